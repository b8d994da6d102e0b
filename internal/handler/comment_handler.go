package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"pratblog/internal/service"
)

type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required"`
	ParentID *int64 `json:"parent_id"`
}

// GetComments - дерево комментариев поста. Доступно без авторизации.
func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.ParseInt(mux.Vars(r)["blogId"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	tree, err := h.CommentService.GetTree(r.Context(), blogID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":  true,
		"comments": tree,
	}, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	blogID, err := strconv.ParseInt(mux.Vars(r)["blogId"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Комментарий не может быть пустым", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.Create(r.Context(), blogID, userID, req.Content, req.ParentID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"comment": comment,
	}, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	commentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID комментария", http.StatusBadRequest)
		return
	}

	var req struct {
		Content string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Комментарий не может быть пустым", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.Update(r.Context(), commentID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Нет прав на это действие", http.StatusForbidden)
		case strings.Contains(err.Error(), "не найден"):
			WriteError(w, "Комментарий не найден", http.StatusNotFound)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"comment": comment,
	}, http.StatusOK)
}

func (h *Handlers) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	commentID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID комментария", http.StatusBadRequest)
		return
	}

	liked, err := h.CommentService.ToggleLike(r.Context(), commentID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"liked":   liked,
	}, http.StatusOK)
}
