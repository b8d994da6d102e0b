package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	handlers "pratblog/internal/handler"
	"pratblog/internal/service"
)

type Middleware func(http.Handler) http.Handler

// IdentityMiddleware - опознает пользователя по cookie-сессии либо
// Bearer-токену и кладет его данные в контекст. Запрос не отклоняется:
// анонимные запросы проходят дальше, обязательность авторизации
// решают сами хендлеры.
func IdentityMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionToken string
			if cookie, err := r.Cookie(handlers.SessionCookieName); err == nil {
				sessionToken = cookie.Value
			}

			var bearerToken string
			authHeader := r.Header.Get("Authorization")
			if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
				bearerToken = parts[1]
			}

			if sessionToken == "" && bearerToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.ResolveIdentity(r.Context(), sessionToken, bearerToken)
			if err != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					ctx := context.WithValue(r.Context(), "authExpired", true)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), "userID", user.ID)
			ctx = context.WithValue(ctx, "userEmail", user.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORSMiddleware(frontendURL string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", frontendURL)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
