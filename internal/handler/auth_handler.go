package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"pratblog/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "Email") {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
		} else {
			WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		}
		return
	}

	user, sessionToken, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "уже существует"):
			WriteError(w, "Email уже существует", http.StatusConflict)
		case strings.Contains(err.Error(), "доступна только"):
			WriteError(w, err.Error(), http.StatusForbidden)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	accessToken, err := h.AuthService.GenerateToken(user)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, sessionToken)

	WriteSuccess(w, AuthResponse{Success: true, Token: accessToken, User: user}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, sessionToken, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, "Неверный email или пароль", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.AuthService.GenerateToken(user)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, sessionToken)

	WriteSuccess(w, AuthResponse{Success: true, Token: accessToken, User: user}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.AuthService.Logout(r.Context(), cookie.Value); err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	h.clearSessionCookie(w)

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Выход выполнен",
	}, http.StatusOK)
}

// GoogleAuth - редирект на страницу согласия Google
func (h *Handlers) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})

	http.Redirect(w, r, h.AuthService.GoogleAuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback - завершение OAuth-цикла: обмен кода, сессия, редирект
// на фронтенд
func (h *Handlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		WriteError(w, "Неверный state параметр", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		WriteError(w, "Отсутствует код авторизации", http.StatusBadRequest)
		return
	}

	user, sessionToken, err := h.AuthService.HandleGoogleCallback(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, "/auth/google/failure", http.StatusTemporaryRedirect)
		return
	}

	accessToken, err := h.AuthService.GenerateToken(user)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, sessionToken)

	redirectURL := fmt.Sprintf("%s/auth-success?token=%s", h.Cfg.FrontendURL, url.QueryEscape(accessToken))
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

func (h *Handlers) GoogleFailure(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Авторизация через Google не удалась", http.StatusUnauthorized)
}

// Me - текущий пользователь. Истекший токен отдает отдельный признак
// expired, чтобы клиент понимал, что нужен повторный вход.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		if isAuthExpired(r) {
			WriteSuccess(w, map[string]interface{}{
				"success": false,
				"expired": true,
			}, http.StatusUnauthorized)
			return
		}

		WriteError(w, "Не авторизован", http.StatusUnauthorized)
		return
	}

	profile, err := h.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    profile,
	}, http.StatusOK)
}

// UserPicture - аватар: по параметру url проксируется внешняя
// картинка, без него отдается аватар текущего пользователя
func (h *Handlers) UserPicture(w http.ResponseWriter, r *http.Request) {
	if pictureURL := r.URL.Query().Get("url"); pictureURL != "" {
		data, mimetype, err := h.UserService.GetExternalPicture(r.Context(), pictureURL)
		if err != nil {
			WriteError(w, "Картинка недоступна", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", mimetype)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Не авторизован", http.StatusUnauthorized)
		return
	}

	data, mimetype, err := h.UserService.GetAvatar(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mimetype)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
