package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireOwner(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	setup := newBrowser(r)
	setup.signUp("alice", "pw123")
	setup.addBirthday("alice", "Bob", "1990-05-04")

	t.Run("anonymous request redirects to sign-in", func(t *testing.T) {
		b := newBrowser(r)
		w := b.get("/alice/home")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/sign_in", w.Header().Get("Location"))
	})

	t.Run("mismatched session never reaches the handler", func(t *testing.T) {
		b := newBrowser(r)
		b.signUp("mallory", "pw123")

		for _, path := range []string{"/alice/home", "/alice/add_birthday", "/alice/all_birthdays", "/alice/bob", "/alice/May/1990/calendar"} {
			w := b.get(path)
			assert.Equal(t, http.StatusFound, w.Code, path)
			assert.Equal(t, "/sign_in", w.Header().Get("Location"), path)
		}

		w := b.post("/alice/bob/delete", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/sign_in", w.Header().Get("Location"))
	})

	t.Run("sign-in resumes the requested path", func(t *testing.T) {
		b := newBrowser(r)

		w := b.get("/alice/add_birthday")
		assert.Equal(t, "/sign_in", w.Header().Get("Location"))

		// The sign-in page shows why the user landed there.
		w = b.get("/sign_in")
		assert.Contains(t, w.Body.String(), "You must be logged in as alice to do that.")

		w = b.post("/sign_in", url.Values{"username": {"alice"}, "password": {"pw123"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/alice/add_birthday", w.Header().Get("Location"))

		// The stored path is consumed; the next sign-in goes home.
		b.post("/sign_out", nil)
		w = b.post("/sign_in", url.Values{"username": {"alice"}, "password": {"pw123"}})
		assert.Equal(t, "/alice/home", w.Header().Get("Location"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	h, _ := setupTestHandler()
	// A tiny limiter so the test trips it quickly.
	r := newTestRouterWithLimiter(h)

	b := newBrowser(r)
	var tooMany bool
	for i := 0; i < 10; i++ {
		w := b.get("/health")
		if w.Code == http.StatusTooManyRequests {
			tooMany = true
			break
		}
	}
	assert.True(t, tooMany)
}
