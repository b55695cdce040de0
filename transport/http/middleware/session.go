package middleware

import (
	"context"
	"errors"
	"net/http"

	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/otel"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/transport/http/response"
)

// Session authenticates requests and places the account identity in the
// request context. Every handler downstream reads the account from the
// context instead of re-parsing credentials.
type Session interface {
	Authenticate(http.Handler) http.Handler
}

type sessionImpl struct {
	jwtService jwt.JWT
	cfg        *config.Config
	otel       otel.Otel
}

func NewSessionMiddleware(jwtService jwt.JWT, cfg *config.Config, otel otel.Otel) Session {
	return &sessionImpl{
		jwtService: jwtService,
		cfg:        cfg,
		otel:       otel,
	}
}

// Authenticate reads the session token, preferring the session cookie and
// falling back to a bearer Authorization header.
func (m *sessionImpl) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "session.middleware")

		tokenString := m.tokenFromRequest(request)
		if tokenString == constant.Empty {
			response.WithError(writer, failure.MissingSession)

			scope.TraceError(failure.MissingSession)
			scope.End()

			return
		}

		claims, err := m.jwtService.ValidateSessionToken(tokenString)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Session has expired"
			default:
				message = "Invalid session token"
			}

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if claims.AccountID == constant.Empty {
			err := failure.Unauthorized("Invalid session claims")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyAccountID, claims.AccountID)
		ctx = context.WithValue(ctx, constant.ContextKeyEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeySessionID, claims.TokenID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *sessionImpl) tokenFromRequest(request *http.Request) string {
	if cookie, err := request.Cookie(m.cfg.Session.CookieName); err == nil && cookie.Value != constant.Empty {
		return cookie.Value
	}

	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return constant.Empty
	}

	return tokenString
}
