package booking

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/service"
	"agenda/shared/constant"
	"agenda/shared/validator"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking/session", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartSession)
		routerGroup.Post("/edit", handler.BeginEdit)
		routerGroup.Get("/", handler.GetSession)
		routerGroup.Post("/slots", handler.ToggleSlot)
		routerGroup.Post("/confirm", handler.ConfirmTimes)
		routerGroup.Post("/reselect", handler.Reselect)
		routerGroup.Post("/submit", handler.Submit)
		routerGroup.Delete("/", handler.CancelSession)
	})
}

// StartSession opens a booking session for one calendar day.
func (handler *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	req := dto.StartSessionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start booking session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking session started")

	response.WithJSON(w, http.StatusCreated, session)
}

// BeginEdit opens a session pre-populated from an existing appointment.
func (handler *Handler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BeginEdit")
	defer scope.End()

	req := dto.EditSessionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.BeginEdit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to begin edit session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Edit session started")

	response.WithJSON(w, http.StatusCreated, session)
}

func (handler *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSession")
	defer scope.End()

	session, err := handler.service.Current(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking session")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// ToggleSlot selects or deselects one time label on the active session.
func (handler *Handler) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleSlot")
	defer scope.End()

	req := dto.ToggleSlotRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Toggle(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle slot")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

func (handler *Handler) ConfirmTimes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmTimes")
	defer scope.End()

	session, err := handler.service.ConfirmTimes(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm times")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

func (handler *Handler) Reselect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reselect")
	defer scope.End()

	session, err := handler.service.Reselect(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reopen time selection")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// Submit books every selected slot, or updates the edited appointment, and
// reports the outcome per slot.
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	req := dto.SubmitRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit booking")

		response.WithError(w, err)

		return
	}

	if !result.Completed {
		scope.AddEvent("Booking submit finished with failed slots")

		response.WithJSON(w, http.StatusMultiStatus, result)

		return
	}

	scope.AddEvent("Booking submitted successfully")

	response.WithJSON(w, http.StatusOK, result)
}

func (handler *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelSession")
	defer scope.End()

	if err := handler.service.Cancel(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking session")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking session cancelled")
}
