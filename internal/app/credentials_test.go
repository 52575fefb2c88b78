package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "strong", password: "Str0ng!Pw"},
		{name: "space counts as symbol", password: "Str0ng Pw"},
		{name: "unicode letters", password: "Ünïcødé9!"},
		{name: "too short", password: "S0!a", wantErr: ErrWeakPassword},
		{name: "no upper", password: "str0ng!pw", wantErr: ErrWeakPassword},
		{name: "no lower", password: "STR0NG!PW", wantErr: ErrWeakPassword},
		{name: "no digit", password: "Strong!Pw", wantErr: ErrWeakPassword},
		{name: "no symbol", password: "Str0ngPw1", wantErr: ErrWeakPassword},
		{name: "empty", password: "", wantErr: ErrWeakPassword},
		{name: "over bcrypt limit", password: "Aa1!" + strings.Repeat("x", 69), wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPasswordStrength(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "alice", want: "alice"},
		{in: "  bob1  ", want: "bob1"},
		{in: "abc", wantErr: true},
		{in: strings.Repeat("a", 20), want: strings.Repeat("a", 20)},
		{in: strings.Repeat("a", 21), wantErr: true},
		{in: "    ", wantErr: true},
		{in: "ユーザー名", want: "ユーザー名"},
	}

	for _, tt := range tests {
		got, err := normalizeUsername(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidUsername, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("Str0ng!Pw")
	assert.NoError(t, err)
	assert.NotContains(t, hash, "Str0ng!Pw")
	assert.True(t, verifyPassword(hash, "Str0ng!Pw"))
	assert.False(t, verifyPassword(hash, "Str0ng!Pw "))
}
