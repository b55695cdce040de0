package servicetype

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/servicetype/model/dto"
	"agenda/internal/domains/servicetype/service"
	"agenda/shared/constant"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ServiceType
	otel    otel.Otel
}

func New(service service.ServiceType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/service-types", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetServiceTypes)
		routerGroup.Post("/", handler.CreateServiceType)
		routerGroup.Delete("/{id}", handler.DeleteServiceType)
	})
}

func (handler *Handler) GetServiceTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceTypes")
	defer scope.End()

	serviceTypes, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service types")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, serviceTypes)
}

func (handler *Handler) CreateServiceType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateServiceType")
	defer scope.End()

	req := dto.CreateServiceTypeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	serviceType, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service type created successfully")

	response.WithJSON(w, http.StatusCreated, serviceType)
}

func (handler *Handler) DeleteServiceType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteServiceType")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service type")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Service type deleted successfully")
}
