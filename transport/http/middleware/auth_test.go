package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carnaval/config"
	"carnaval/infras/jwt"
	jwtMocks "carnaval/infras/jwt/mocks"
	"carnaval/infras/otel/mocks"
	"carnaval/shared/constant"
	"carnaval/transport/http/middleware"
)

func TestAuthMiddleware_Auth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()
	cfg := &config.Config{}

	m := middleware.NewAuthRoleMiddleware(mockJWT, mockOtel, nil, cfg)

	mux := chi.NewRouter()
	mux.With(m.Auth).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User-ID", userID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid access token passes claims through", func(t *testing.T) {
		mockJWT.EXPECT().
			ValidateToken("valid-token", jwt.AccessToken).
			Return(&jwt.Claims{
				UserID: "user-id-123",
				Email:  "test@example.com",
				Role:   constant.RoleUser,
				Type:   jwt.AccessToken,
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer valid-token")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-id-123", rec.Header().Get("X-User-ID"))
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		mockJWT.EXPECT().
			ValidateToken("expired-token", jwt.AccessToken).
			Return(nil, jwt.ErrExpiredToken)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer expired-token")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing authorization header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed authorization header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, "Token abc")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
