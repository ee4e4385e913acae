package server

import (
	"net/http"
	"testing"

	"github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchUsers(t *testing.T) {
	t.Run("no matches", func(t *testing.T) {
		s, m := newTestServer()
		app := fiber.New()
		app.Post("/search/:username", asUser(9), s.SearchUsers)

		m.users.On("Search", mock.Anything, "ghost", 20).Return([]models.User{}, nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/search/ghost", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found", decodeBody(t, resp)["error"])
	})

	t.Run("projects matches", func(t *testing.T) {
		s, m := newTestServer()
		app := fiber.New()
		app.Post("/search/:username", asUser(9), s.SearchUsers)

		m.users.On("Search", mock.Anything, "nh", 20).Return([]models.User{
			{ID: 2, Username: "nhat", DisplayName: "Nhat", Password: "hash"},
		}, nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/search/nh", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		defer func() { _ = resp.Body.Close() }()
		var profiles []models.Profile
		require.NoError(t, jsonDecode(resp, &profiles))
		require.Len(t, profiles, 1)
		assert.Equal(t, "nhat", profiles[0].Username)
	})
}
