//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/gateway"
	"agenda/infras/jwt"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/redis"
	"agenda/infras/s3"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	appointmentRepository "agenda/internal/domains/appointment/repository"
	appointmentService "agenda/internal/domains/appointment/service"
	authService "agenda/internal/domains/auth/service"
	bookingService "agenda/internal/domains/booking/service"
	brandingService "agenda/internal/domains/branding/service"
	clientService "agenda/internal/domains/client/service"
	scheduleService "agenda/internal/domains/schedule/service"
	servicetypeService "agenda/internal/domains/servicetype/service"

	appointmentHandler "agenda/internal/handlers/appointment"
	authHandler "agenda/internal/handlers/auth"
	bookingHandler "agenda/internal/handlers/booking"
	brandingHandler "agenda/internal/handlers/branding"
	clientHandler "agenda/internal/handlers/client"
	scheduleHandler "agenda/internal/handlers/schedule"
	servicetypeHandler "agenda/internal/handlers/servicetype"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	gateway.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var bookingDomain = wire.NewSet(
	bookingService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleService.New,
)

var servicetypeDomain = wire.NewSet(
	servicetypeService.New,
)

var clientDomain = wire.NewSet(
	clientService.New,
)

var brandingDomain = wire.NewSet(
	brandingService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	appointmentDomain,
	bookingDomain,
	scheduleDomain,
	servicetypeDomain,
	clientDomain,
	brandingDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	appointmentHandler.New,
	authHandler.New,
	bookingHandler.New,
	brandingHandler.New,
	clientHandler.New,
	scheduleHandler.New,
	servicetypeHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
