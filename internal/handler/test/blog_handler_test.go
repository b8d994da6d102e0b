package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pratblog/internal/models"
	"pratblog/internal/service"
)

func TestGetBlogByID(t *testing.T) {
	t.Run("Пост отдается и просмотр фиксируется", func(t *testing.T) {
		h, mocks := newTestHandlers()

		blog := &models.BlogWithStats{ID: 1, Title: "Пост", ViewsCount: 5}
		mocks.Blog.On("GetByID", mock.Anything, int64(1)).Return(blog, nil)
		mocks.Blog.On("RecordView", int64(1), mock.Anything, mock.Anything).Return()

		req := httptest.NewRequest(http.MethodGet, "/blogs/1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()

		h.GetBlogByID(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mocks.Blog.AssertCalled(t, "RecordView", int64(1), mock.Anything, mock.Anything)
	})

	t.Run("Несуществующий пост дает 404", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.Blog.On("GetByID", mock.Anything, int64(999)).
			Return(nil, errNotFound{})

		req := httptest.NewRequest(http.MethodGet, "/blogs/999", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "999"})
		rec := httptest.NewRecorder()

		h.GetBlogByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mocks.Blog.AssertNotCalled(t, "RecordView")
	})
}

func TestDeleteBlog(t *testing.T) {
	t.Run("Чужой пост дает 403", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.Blog.On("Delete", mock.Anything, int64(1), int64(10)).
			Return(service.ErrForbidden)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/api/blogs/1", nil), 10)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()

		h.DeleteBlog(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Аноним получает 401", func(t *testing.T) {
		h, mocks := newTestHandlers()

		req := httptest.NewRequest(http.MethodDelete, "/api/blogs/1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()

		h.DeleteBlog(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mocks.Blog.AssertNotCalled(t, "Delete")
	})
}

func TestGetTrendingBlogs(t *testing.T) {
	h, mocks := newTestHandlers()

	blogs := []models.BlogWithStats{
		{ID: 2, Title: "Популярный", LikesCount: 9},
		{ID: 1, Title: "Обычный", LikesCount: 2},
	}
	mocks.Blog.On("GetTrending", mock.Anything).Return(blogs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/trending", nil)
	rec := httptest.NewRecorder()

	h.GetTrendingBlogs(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Blogs   []models.BlogWithStats `json:"blogs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Blogs, 2)
	assert.Equal(t, int64(9), resp.Blogs[0].LikesCount)
}

func TestSitemap(t *testing.T) {
	h, mocks := newTestHandlers()

	mocks.Blog.On("GenerateSitemap", mock.Anything).
		Return(`<?xml version="1.0" encoding="UTF-8"?><urlset></urlset>`, nil)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	rec := httptest.NewRecorder()

	h.Sitemap(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "urlset")
}

type errNotFound struct{}

func (errNotFound) Error() string { return "пост с ID 999 не найден" }
