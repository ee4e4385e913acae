package server

import (
	"net/http"
	"testing"

	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUpdateAccountData(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, m := newTestServer()
		app := fiber.New()
		app.Put("/update-data", asUser(1), s.UpdateAccountData)

		m.users.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "nhat"}, nil).Once()
		m.users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.DisplayName == "New Name" && u.Username == "nhat"
		})).Return(nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/update-data",
			map[string]string{"displayName": "New Name", "username": "nhat"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Update user data successfully", decodeBody(t, resp)["message"])
		m.users.AssertExpectations(t)
	})

	t.Run("username collision", func(t *testing.T) {
		s, m := newTestServer()
		app := fiber.New()
		app.Put("/update-data", asUser(1), s.UpdateAccountData)

		m.users.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "nhat"}, nil).Once()
		m.users.On("GetByUsername", mock.Anything, "taken").
			Return(&models.User{ID: 2, Username: "taken"}, nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/update-data",
			map[string]string{"displayName": "N", "username": "taken"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Username already exists", decodeBody(t, resp)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		s, _ := newTestServer()
		app := fiber.New()
		app.Put("/update-data", asUser(1), s.UpdateAccountData)

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/update-data",
			map[string]string{"username": "nhat"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Display name and username cannot be empty", decodeBody(t, resp)["error"])
	})
}

func TestChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("current123"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("success revokes refresh tokens", func(t *testing.T) {
		s, m := newTestServer()
		app := fiber.New()
		app.Put("/change-password", asUser(1), s.ChangePassword)

		m.users.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "nhat", Password: string(hash)}, nil).Once()
		m.users.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		m.tokens.On("DeleteAllForUser", mock.Anything, uint(1)).Return(nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/change-password", map[string]string{
			"currentPassword": "current123",
			"newPassword":     "next12345",
			"confirmPassword": "next12345",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Đổi mật khẩu thành công", decodeBody(t, resp)["message"])
		m.tokens.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		s, m := newTestServer()
		app := fiber.New()
		app.Put("/change-password", asUser(1), s.ChangePassword)

		m.users.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Username: "nhat", Password: string(hash)}, nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/change-password", map[string]string{
			"currentPassword": "wrong",
			"newPassword":     "next12345",
			"confirmPassword": "next12345",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Mật khẩu hiện tại không đúng", decodeBody(t, resp)["error"])
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		s, _ := newTestServer()
		app := fiber.New()
		app.Put("/change-password", asUser(1), s.ChangePassword)

		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/change-password", map[string]string{
			"currentPassword": "current123",
			"newPassword":     "next12345",
			"confirmPassword": "other",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Mật khẩu xác nhận không khớp", decodeBody(t, resp)["error"])
	})
}
