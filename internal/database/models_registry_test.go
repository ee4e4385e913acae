package database

import (
	"testing"

	modelspkg "github.com/quocnhat02092003/thread-app/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesNotification(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Notification); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Notification")
}

func TestPersistentModels_IncludesRefreshToken(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.RefreshToken); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include RefreshToken")
}
