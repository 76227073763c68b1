package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"carnaval/infras/postgres"
	"carnaval/transport/http/response"
)

type Handler struct {
	db    *postgres.Connection
	redis *goRedis.Client
}

func New(db *postgres.Connection, redis *goRedis.Client) Handler {
	return Handler{
		db:    db,
		redis: redis,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/health", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Check)
	})
}

// Check reports whether the service can reach its backing stores.
// @Summary Health check
// @Description Report whether the database and cache are reachable.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "Service healthy"
// @Failure 503 {object} response.Error
// @Router /v1/health [get]
func (handler *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := handler.db.Read.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("health check failed: postgres unreachable")

		response.WithUnhealthy(w)

		return
	}

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("health check failed: redis unreachable")

		response.WithUnhealthy(w)

		return
	}

	response.WithMessage(w, http.StatusOK, "healthy")
}
