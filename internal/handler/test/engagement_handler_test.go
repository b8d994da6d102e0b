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
)

func TestToggleBlogLike(t *testing.T) {
	t.Run("Аноним получает 401", func(t *testing.T) {
		h, mocks := newTestHandlers()

		req := httptest.NewRequest(http.MethodPost, "/api/blogs/1/like", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()

		h.ToggleBlogLike(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mocks.Blog.AssertNotCalled(t, "ToggleLike")
	})

	t.Run("Авторизованный ставит лайк", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.Blog.On("ToggleLike", mock.Anything, int64(1), int64(10)).Return(true, nil)

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/blogs/1/like", nil), 10)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()

		h.ToggleBlogLike(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["liked"])
	})
}

func TestBlogLikeStatus(t *testing.T) {
	t.Run("Аноним видит счетчик без своего флага", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.Blog.On("LikeStatus", mock.Anything, int64(1), (*int64)(nil)).
			Return(int64(7), false, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/blogs/1/likes", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()

		h.BlogLikeStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, float64(7), resp["count"])
		assert.Equal(t, false, resp["liked"])
	})
}

func TestToggleFollow(t *testing.T) {
	t.Run("Аноним получает 401", func(t *testing.T) {
		h, _ := newTestHandlers()

		req := httptest.NewRequest(http.MethodPost, "/api/users/20/follow", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "20"})
		rec := httptest.NewRecorder()

		h.ToggleFollow(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Подписка на себя запрещена", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.User.On("ToggleFollow", mock.Anything, int64(10), int64(10)).
			Return(false, errSelfFollow{})

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/users/10/follow", nil), 10)
		req = mux.SetURLVars(req, map[string]string{"id": "10"})
		rec := httptest.NewRecorder()

		h.ToggleFollow(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type errSelfFollow struct{}

func (errSelfFollow) Error() string { return "нельзя подписаться на самого себя" }
