package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
	"pratblog/internal/service"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// readUploadedImage - читает файл из multipart-формы и определяет его
// тип по содержимому, а не по расширению. Отсутствие файла не ошибка.
func (h *Handlers) readUploadedImage(r *http.Request, field string) ([]byte, string, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("ошибка чтения файла: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.Cfg.MaxUploadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("ошибка чтения файла: %w", err)
	}

	if int64(len(data)) > h.Cfg.MaxUploadSize {
		return nil, "", fmt.Errorf("файл превышает допустимый размер")
	}

	mtype := mimetype.Detect(data)
	if !allowedImageTypes[mtype.String()] {
		return nil, "", fmt.Errorf("недопустимый тип файла: %s", mtype.String())
	}

	return data, mtype.String(), nil
}

func (h *Handlers) blogRequestFromForm(r *http.Request) (*service.CreateBlogRequest, error) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		return nil, fmt.Errorf("неверный формат запроса: %w", err)
	}

	req := &service.CreateBlogRequest{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Content:     r.FormValue("content"),
	}

	data, mtype, err := h.readUploadedImage(r, "image")
	if err != nil {
		return nil, err
	}
	req.Image = data
	req.Mimetype = mtype

	return req, nil
}

func (h *Handlers) CreateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	req, err := h.blogRequestFromForm(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Заполните все обязательные поля", http.StatusBadRequest)
		return
	}

	// Картинка обязательна при создании, в отличие от обновления
	if len(req.Image) == 0 {
		WriteError(w, "Картинка обязательна", http.StatusBadRequest)
		return
	}

	blog, err := h.BlogService.Create(r.Context(), userID, *req)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blog":    blog,
	}, http.StatusCreated)
}

func (h *Handlers) GetBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.BlogService.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	}, http.StatusOK)
}

func (h *Handlers) GetBlogByID(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	blog, err := h.BlogService.GetByID(r.Context(), blogID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// Просмотр пишется в фоне, ответ его не ждет
	h.BlogService.RecordView(blog.ID, optionalUserID(r), clientIP(r))

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blog":    blog,
	}, http.StatusOK)
}

func (h *Handlers) GetBlogBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	blog, err := h.BlogService.GetBySlug(r.Context(), slug)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.BlogService.RecordView(blog.ID, optionalUserID(r), clientIP(r))

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blog":    blog,
	}, http.StatusOK)
}

func (h *Handlers) GetUserBlogs(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	blogs, err := h.BlogService.GetByUserID(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	}, http.StatusOK)
}

func (h *Handlers) GetTrendingBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.BlogService.GetTrending(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	}, http.StatusOK)
}

func (h *Handlers) UpdateBlog(w http.ResponseWriter, r *http.Request) {
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

	req, err := h.blogRequestFromForm(r)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Заполните все обязательные поля", http.StatusBadRequest)
		return
	}

	if err := h.BlogService.Update(r.Context(), blogID, userID, *req); err != nil {
		h.writeBlogMutationError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Пост обновлен",
	}, http.StatusOK)
}

func (h *Handlers) DeleteBlog(w http.ResponseWriter, r *http.Request) {
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

	if err := h.BlogService.Delete(r.Context(), blogID, userID); err != nil {
		h.writeBlogMutationError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"message": "Пост удален",
	}, http.StatusOK)
}

func (h *Handlers) writeBlogMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Нет прав на это действие", http.StatusForbidden)
	case strings.Contains(err.Error(), "не найден"):
		WriteError(w, "Пост не найден", http.StatusNotFound)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handlers) GetBlogImage(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	data, mtype, err := h.BlogService.GetImage(r.Context(), blogID)
	if err != nil || len(data) == 0 {
		WriteError(w, "Картинка не найдена", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", mtype)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handlers) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.BlogService.GenerateSitemap(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, sitemap)
}
