package appointment

import (
	"net/http"

	"agenda/infras/otel"
	"agenda/internal/domains/appointment/service"
	"agenda/shared/constant"
	"agenda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Post("/refresh", handler.RefreshAppointments)
		routerGroup.Get("/days/{date}", handler.GetDayView)
		routerGroup.Get("/days/{date}/availability", handler.GetAvailability)
		routerGroup.Delete("/{id}/slots/{slot}", handler.DeleteSlot)
	})
}

// GetAppointments lists the account's appointments, re-fetched from the
// remote backend.
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	appointments, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

func (handler *Handler) RefreshAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshAppointments")
	defer scope.End()

	if err := handler.service.Refresh(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh appointments")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Appointments refreshed successfully")
}

// GetDayView returns the booked slots of one day, one row per slot.
func (handler *Handler) GetDayView(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDayView")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	dayView, err := handler.service.DayView(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get day view")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dayView)
}

// GetAvailability returns the offerable, booked and free slots of one day.
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	availability, err := handler.service.Availability(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
}

func (handler *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	slot := chi.URLParam(r, constant.RequestParamSlot)

	if err := handler.service.DeleteSlot(ctx, id, slot); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slot deleted successfully")

	response.WithMessage(w, http.StatusOK, "Slot deleted successfully")
}
