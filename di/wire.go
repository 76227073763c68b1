//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"carnaval/config"
	"carnaval/infras/jwt"
	"carnaval/infras/kafka"
	"carnaval/infras/otel"
	"carnaval/infras/postgres"
	"carnaval/infras/redis"
	"carnaval/infras/s3"
	"carnaval/permissions"
	"carnaval/shared/cache"
	"carnaval/transport/http"
	"carnaval/transport/http/middleware"
	"carnaval/transport/http/router"

	authService "carnaval/internal/domains/auth/service"
	bookingRepository "carnaval/internal/domains/booking/repository"
	bookingService "carnaval/internal/domains/booking/service"
	eventRepository "carnaval/internal/domains/event/repository"
	eventService "carnaval/internal/domains/event/service"
	galleryRepository "carnaval/internal/domains/gallery/repository"
	galleryService "carnaval/internal/domains/gallery/service"
	hotelRepository "carnaval/internal/domains/hotel/repository"
	hotelService "carnaval/internal/domains/hotel/service"
	incidentRepository "carnaval/internal/domains/incident/repository"
	incidentService "carnaval/internal/domains/incident/service"
	userRepository "carnaval/internal/domains/user/repository"
	userService "carnaval/internal/domains/user/service"
	"carnaval/internal/workers/notification"

	authHandler "carnaval/internal/handlers/auth"
	bookingHandler "carnaval/internal/handlers/booking"
	eventHandler "carnaval/internal/handlers/event"
	galleryHandler "carnaval/internal/handlers/gallery"
	healthHandler "carnaval/internal/handlers/health"
	hotelHandler "carnaval/internal/handlers/hotel"
	incidentHandler "carnaval/internal/handlers/incident"
	userHandler "carnaval/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var incidentDomain = wire.NewSet(
	incidentRepository.New,
	incidentService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	eventDomain,
	galleryDomain,
	hotelDomain,
	bookingDomain,
	incidentDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	eventHandler.New,
	galleryHandler.New,
	hotelHandler.New,
	bookingHandler.New,
	incidentHandler.New,
	userHandler.New,
	healthHandler.New,
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

func InitializeNotificationWorker() notification.Worker {
	wire.Build(
		config.Get,
		kafka.New,
		notification.New,
	)

	return nil
}
