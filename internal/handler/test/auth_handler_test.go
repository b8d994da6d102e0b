package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	handlers "pratblog/internal/handler"
	"pratblog/internal/models"
)

func TestMe(t *testing.T) {
	t.Run("Авторизованный получает свой профиль", func(t *testing.T) {
		h, mocks := newTestHandlers()

		profile := &models.UserProfile{
			User:       models.User{ID: 10, Email: "user@gmail.com"},
			BlogsCount: 3,
		}
		mocks.User.On("GetProfile", mock.Anything, int64(10)).Return(profile, nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/me", nil), 10)
		rec := httptest.NewRecorder()

		h.Me(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
	})

	t.Run("Истекший токен отдает признак expired", func(t *testing.T) {
		h, _ := newTestHandlers()

		req := withExpiredAuth(httptest.NewRequest(http.MethodGet, "/me", nil))
		rec := httptest.NewRecorder()

		h.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, true, resp["expired"])
	})

	t.Run("Аноним получает 401 без признака expired", func(t *testing.T) {
		h, _ := newTestHandlers()

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		rec := httptest.NewRecorder()

		h.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.NotContains(t, resp, "expired")
	})
}

func TestLogin(t *testing.T) {
	t.Run("Успешный вход ставит cookie сессии", func(t *testing.T) {
		h, mocks := newTestHandlers()

		user := &models.User{ID: 10, Email: "user@gmail.com"}
		mocks.Auth.On("Login", mock.Anything, "user@gmail.com", "secret123").
			Return(user, "session-token", nil)
		mocks.Auth.On("GenerateToken", user).Return("jwt-token", nil)

		body, _ := json.Marshal(map[string]string{
			"email":    "user@gmail.com",
			"password": "secret123",
		})

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		var found bool
		for _, c := range cookies {
			if c.Name == handlers.SessionCookieName {
				found = true
				assert.Equal(t, "session-token", c.Value)
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, found, "cookie сессии не установлена")

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "jwt-token", resp["token"])
	})

	t.Run("Неверный пароль дает 401", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.Auth.On("Login", mock.Anything, "user@gmail.com", "wrong").
			Return(nil, "", assert.AnError)

		body, _ := json.Marshal(map[string]string{
			"email":    "user@gmail.com",
			"password": "wrong",
		})

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRegister(t *testing.T) {
	t.Run("Чужой домен получает 403", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.Auth.On("Register", mock.Anything, "user@example.com", "secret123").
			Return(nil, "", errDomainGate{})

		body, _ := json.Marshal(map[string]string{
			"email":    "user@example.com",
			"password": "secret123",
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Register(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Короткий пароль отклоняется до сервиса", func(t *testing.T) {
		h, _ := newTestHandlers()

		body, _ := json.Marshal(map[string]string{
			"email":    "user@gmail.com",
			"password": "123",
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type errDomainGate struct{}

func (errDomainGate) Error() string { return "регистрация доступна только для адресов @gmail.com" }
