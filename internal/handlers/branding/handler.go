package branding

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/branding/model/dto"
	"agenda/internal/domains/branding/service"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Branding
	otel    otel.Otel
}

func New(service service.Branding, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/branding", func(routerGroup chi.Router) {
		routerGroup.Post("/logo", handler.UploadLogo)
		routerGroup.Delete("/logo", handler.DeleteLogo)
	})
}

// UploadLogo stores the account's logo on object storage and returns its
// public URL.
func (handler *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadLogo")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("request must be multipart/form-data"))

		return
	}

	file, header, err := r.FormFile(constant.FormFileLogo)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read logo file")

		response.WithError(w, failure.BadRequestFromString("logo file is required"))

		return
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := handler.service.UploadLogo(ctx, file, header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload logo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Logo uploaded successfully")

	response.WithJSON(w, http.StatusCreated, result)
}

func (handler *Handler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLogo")
	defer scope.End()

	req := dto.DeleteLogoRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.DeleteLogo(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete logo")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Logo deleted successfully")
}
