package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetCookie(rec, "tok", 24*time.Hour, CookieOptions{})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "session", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}

func TestClearCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearCookie(rec, CookieOptions{Name: "sid"})

	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, "sid=;")
	assert.Contains(t, header, "Max-Age=0")
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.Empty(t, TokenFromRequest(req, CookieOptions{}))

	req.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	assert.Equal(t, "abc", TokenFromRequest(req, CookieOptions{}))
}
