package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"pratblog/internal/repository"
)

// GetUserProfile - публичный профиль со счетчиками постов и подписок
func (h *Handlers) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	profile, err := h.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    profile,
	}, http.StatusOK)
}

// UpdateProfile - редактирование собственного профиля
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	if targetID != userID {
		WriteError(w, "Нет прав на это действие", http.StatusForbidden)
		return
	}

	var req repository.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	profile, err := h.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"user":    profile,
	}, http.StatusOK)
}

func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.uploadUserImage(w, r, "avatar", h.UserService.UpdateAvatar)
}

func (h *Handlers) UploadCover(w http.ResponseWriter, r *http.Request) {
	h.uploadUserImage(w, r, "cover", h.UserService.UpdateCover)
}

// uploadUserImage - общий путь загрузки аватара и обложки: только свой
// профиль, тип файла определяется по содержимому.
func (h *Handlers) uploadUserImage(w http.ResponseWriter, r *http.Request, field string, save func(ctx context.Context, userID int64, data []byte, mimetype string) error) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	if targetID != userID {
		WriteError(w, "Нет прав на это действие", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	data, mtype, err := h.readUploadedImage(r, field)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(data) == 0 {
		WriteError(w, "Файл не передан", http.StatusBadRequest)
		return
	}

	if err := save(r.Context(), userID, data, mtype); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Файл сохранен",
	}, http.StatusOK)
}

// GetAvatar - аватар пользователя, всегда отдает картинку: загруженную,
// внешнюю через прокси либо SVG с инициалами
func (h *Handlers) GetAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	data, mtype, err := h.UserService.GetAvatar(r.Context(), userID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", mtype)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handlers) GetCover(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	data, mtype, err := h.UserService.GetCover(r.Context(), userID)
	if err != nil {
		WriteError(w, "Обложка не найдена", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", mtype)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetBookmarkedBlogs - закладки доступны только их владельцу
func (h *Handlers) GetBookmarkedBlogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	if targetID != userID {
		WriteError(w, "Нет прав на это действие", http.StatusForbidden)
		return
	}

	blogs, err := h.UserService.GetBookmarkedBlogs(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	}, http.StatusOK)
}

func (h *Handlers) GetLikedBlogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	if targetID != userID {
		WriteError(w, "Нет прав на это действие", http.StatusForbidden)
		return
	}

	blogs, err := h.UserService.GetLikedBlogs(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	}, http.StatusOK)
}
