package router

import (
	"github.com/go-chi/chi/v5"

	"carnaval/internal/handlers/auth"
	"carnaval/internal/handlers/booking"
	"carnaval/internal/handlers/event"
	"carnaval/internal/handlers/gallery"
	"carnaval/internal/handlers/health"
	"carnaval/internal/handlers/hotel"
	"carnaval/internal/handlers/incident"
	"carnaval/internal/handlers/user"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Event    event.Handler
	Gallery  gallery.Handler
	Hotel    hotel.Handler
	Booking  booking.Handler
	Incident incident.Handler
	User     user.Handler
	Health   health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Incident.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Health.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
