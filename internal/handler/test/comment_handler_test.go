package test

import (
	"bytes"
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

func TestGetComments(t *testing.T) {
	t.Run("Дерево доступно без авторизации", func(t *testing.T) {
		h, mocks := newTestHandlers()

		tree := []*models.CommentNode{
			{
				Comment: models.Comment{ID: 1, Content: "корень"},
				Replies: []*models.CommentNode{
					{Comment: models.Comment{ID: 2, Content: "ответ"}, Replies: []*models.CommentNode{}},
				},
			},
		}
		mocks.Comment.On("GetTree", mock.Anything, int64(1)).Return(tree, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/blogs/1/comments", nil)
		req = mux.SetURLVars(req, map[string]string{"blogId": "1"})
		rec := httptest.NewRecorder()

		h.GetComments(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success  bool                  `json:"success"`
			Comments []*models.CommentNode `json:"comments"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Comments, 1)
		require.Len(t, resp.Comments[0].Replies, 1)
		assert.Equal(t, int64(2), resp.Comments[0].Replies[0].ID)
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("Аноним получает 401", func(t *testing.T) {
		h, mocks := newTestHandlers()

		body, _ := json.Marshal(map[string]string{"content": "текст"})
		req := httptest.NewRequest(http.MethodPost, "/api/blogs/1/comments", bytes.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"blogId": "1"})
		rec := httptest.NewRecorder()

		h.CreateComment(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mocks.Comment.AssertNotCalled(t, "Create")
	})

	t.Run("Пустой комментарий отклоняется", func(t *testing.T) {
		h, _ := newTestHandlers()

		body, _ := json.Marshal(map[string]string{"content": ""})
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/blogs/1/comments", bytes.NewReader(body)), 10)
		req = mux.SetURLVars(req, map[string]string{"blogId": "1"})
		rec := httptest.NewRecorder()

		h.CreateComment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Ответ на комментарий передает parent_id", func(t *testing.T) {
		h, mocks := newTestHandlers()

		parentID := int64(5)
		created := &models.Comment{ID: 9, BlogID: 1, UserID: 10, ParentID: &parentID, Content: "ответ"}
		mocks.Comment.On("Create", mock.Anything, int64(1), int64(10), "ответ", &parentID).
			Return(created, nil)

		body, _ := json.Marshal(map[string]interface{}{"content": "ответ", "parent_id": 5})
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/blogs/1/comments", bytes.NewReader(body)), 10)
		req = mux.SetURLVars(req, map[string]string{"blogId": "1"})
		rec := httptest.NewRecorder()

		h.CreateComment(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mocks.Comment.AssertExpectations(t)
	})
}

func TestUpdateComment(t *testing.T) {
	t.Run("Чужой комментарий дает 403", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.Comment.On("Update", mock.Anything, int64(5), int64(10), "текст").
			Return(nil, service.ErrForbidden)

		body, _ := json.Marshal(map[string]string{"content": "текст"})
		req := withUser(httptest.NewRequest(http.MethodPut, "/api/comments/5", bytes.NewReader(body)), 10)
		req = mux.SetURLVars(req, map[string]string{"id": "5"})
		rec := httptest.NewRecorder()

		h.UpdateComment(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
