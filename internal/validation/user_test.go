package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		ok       bool
	}{
		{name: "valid with number", username: "quocnhat02", ok: true},
		{name: "valid with underscore", username: "test_user123", ok: true},
		{name: "minimum length", username: "abc", ok: true},
		{name: "too short", username: "ab", ok: false},
		{name: "maximum length", username: strings.Repeat("a", 50), ok: true},
		{name: "too long", username: strings.Repeat("a", 51), ok: false},
		{name: "uppercase", username: "Nhat", ok: false},
		{name: "symbol", username: "user@123", ok: false},
		{name: "space", username: "user name", ok: false},
		{name: "leading underscore", username: "_user", ok: false},
		{name: "trailing underscore", username: "user_", ok: false},
		{name: "reserved admin", username: "admin", ok: false},
		{name: "reserved api", username: "api", ok: false},
		{name: "reserved notifications", username: "notifications", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.username)
			if tc.ok && err != nil {
				t.Fatalf("expected valid username, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid username, got nil error")
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "SecurePass12!@", false},
		{"Exactly Min Length", "abc123", false},
		{"Exactly Max Length", strings.Repeat("b", 128), false},
		{"Too Short", "ab1", true},
		{"Too Long", strings.Repeat("b", 129), true},
		{"Unicode Counted As Runes", "mậtkhẩu", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
