package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (h *Handlers) ToggleBlogLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	blogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	liked, err := h.BlogService.ToggleLike(r.Context(), blogID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"liked":   liked,
	}, http.StatusOK)
}

// BlogLikeStatus - число лайков и флаг лайка текущего пользователя.
// Для анонимов флаг всегда false.
func (h *Handlers) BlogLikeStatus(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	count, liked, err := h.BlogService.LikeStatus(r.Context(), blogID, optionalUserID(r))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"count":   count,
		"liked":   liked,
	}, http.StatusOK)
}

func (h *Handlers) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	blogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	bookmarked, err := h.BlogService.ToggleBookmark(r.Context(), blogID, userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":    true,
		"bookmarked": bookmarked,
	}, http.StatusOK)
}

func (h *Handlers) BookmarkStatus(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	bookmarked, err := h.BlogService.BookmarkStatus(r.Context(), blogID, optionalUserID(r))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":    true,
		"bookmarked": bookmarked,
	}, http.StatusOK)
}

func (h *Handlers) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	followingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	following, err := h.UserService.ToggleFollow(r.Context(), followerID, followingID)
	if err != nil {
		if err.Error() == "нельзя подписаться на самого себя" {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":   true,
		"following": following,
	}, http.StatusOK)
}

func (h *Handlers) FollowStatus(w http.ResponseWriter, r *http.Request) {
	followingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	count, following, err := h.UserService.FollowStatus(r.Context(), followingID, optionalUserID(r))
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":   true,
		"followers": count,
		"following": following,
	}, http.StatusOK)
}
