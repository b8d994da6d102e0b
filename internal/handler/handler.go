package handlers

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"pratblog/internal/config"
	"pratblog/internal/service"
)

const SessionCookieName = "sessionId"

type Handlers struct {
	AuthService    service.AuthService
	BlogService    service.BlogService
	CommentService service.CommentService
	UserService    service.UserService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		BlogService:    service.Blog,
		CommentService: service.Comment,
		UserService:    service.User,
		Cfg:            config,
		Validate:       validator.New(),
	}
}

// currentUserID - идентификатор пользователя из контекста запроса.
// Второе значение false означает анонимный запрос.
func currentUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("userID").(int64)
	return userID, ok
}

// optionalUserID - то же, но в виде указателя для запросов, где
// авторизация не обязательна
func optionalUserID(r *http.Request) *int64 {
	if userID, ok := currentUserID(r); ok {
		return &userID
	}
	return nil
}

func isAuthExpired(r *http.Request) bool {
	expired, ok := r.Context().Value("authExpired").(bool)
	return ok && expired
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Cfg.SessionLifetime.Seconds()),
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// clientIP - адрес клиента с учетом реверс-прокси
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
