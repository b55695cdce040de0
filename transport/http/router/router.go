package router

import (
	"agenda/internal/handlers/appointment"
	"agenda/internal/handlers/auth"
	"agenda/internal/handlers/booking"
	"agenda/internal/handlers/branding"
	"agenda/internal/handlers/client"
	"agenda/internal/handlers/schedule"
	"agenda/internal/handlers/servicetype"
	"agenda/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Appointment appointment.Handler
	Booking     booking.Handler
	Schedule    schedule.Handler
	ServiceType servicetype.Handler
	Client      client.Handler
	Branding    branding.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Session        middleware.Session
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.Session.Authenticate)

			r.DomainHandlers.Appointment.Router(protected)
			r.DomainHandlers.Booking.Router(protected)
			r.DomainHandlers.Schedule.Router(protected)
			r.DomainHandlers.ServiceType.Router(protected)
			r.DomainHandlers.Client.Router(protected)
			r.DomainHandlers.Branding.Router(protected)
		})
	})
}

func New(domainHandlers DomainHandlers, session middleware.Session) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Session:        session,
	}
}
