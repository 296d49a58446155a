package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllBirthdays(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	b := newBrowser(r)
	b.signUp("alice", "pw123")

	t.Run("no birthdays redirects home with message", func(t *testing.T) {
		w := b.get("/alice/all_birthdays/1")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/alice/home", w.Header().Get("Location"))

		w = b.get("/alice/home")
		assert.Contains(t, w.Body.String(), "You are not keeping track of any birthdays! Please add some first.")
	})

	// Seven birthdays across the year, inserted out of order.
	seed := []struct {
		name string
		date string
	}{
		{"november kid", "2001-11-20"},
		{"january kid", "2000-01-15"},
		{"march kid", "1999-03-03"},
		{"january elder", "1980-01-02"},
		{"july kid", "1995-07-30"},
		{"february kid", "1992-02-14"},
		{"december kid", "1988-12-25"},
	}
	for _, s := range seed {
		w := b.addBirthday("alice", s.name, s.date)
		assert.Equal(t, http.StatusFound, w.Code, s.name)
	}

	t.Run("bare route redirects to page one", func(t *testing.T) {
		w := b.get("/alice/all_birthdays")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/alice/all_birthdays/1", w.Header().Get("Location"))
	})

	t.Run("page one holds the five earliest, sorted by month then day", func(t *testing.T) {
		w := b.get("/alice/all_birthdays/1")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()

		ordered := []string{"January Elder", "January Kid", "February Kid", "March Kid", "July Kid"}
		last := -1
		for _, name := range ordered {
			idx := strings.Index(body, name)
			assert.Greater(t, idx, last, name)
			last = idx
		}
		assert.NotContains(t, body, "November Kid")
		assert.NotContains(t, body, "December Kid")
	})

	t.Run("page two holds the remainder", func(t *testing.T) {
		w := b.get("/alice/all_birthdays/2")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "November Kid")
		assert.Contains(t, body, "December Kid")
		assert.NotContains(t, body, "January Elder")
	})

	t.Run("page zero is out of bounds", func(t *testing.T) {
		w := b.get("/alice/all_birthdays/0")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/alice/all_birthdays", w.Header().Get("Location"))

		w = b.get("/alice/all_birthdays/1")
		assert.Contains(t, w.Body.String(), "0 is not a valid page. Please try a page less than 2 and greater than 0.")
	})

	t.Run("page past the end is out of bounds", func(t *testing.T) {
		w := b.get("/alice/all_birthdays/3")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/alice/all_birthdays", w.Header().Get("Location"))
	})

	t.Run("page count is ceil of total over five", func(t *testing.T) {
		// Eighth and ninth birthdays keep the page count at two until eleven.
		b.addBirthday("alice", "extra one", "1990-06-01")
		b.addBirthday("alice", "extra two", "1990-06-02")
		b.addBirthday("alice", "extra three", "1990-06-03")

		w := b.get("/alice/all_birthdays/2")
		assert.Equal(t, http.StatusOK, w.Code)

		w = b.get("/alice/all_birthdays/3")
		assert.Equal(t, http.StatusFound, w.Code)

		b.addBirthday("alice", "extra four", "1990-06-04")
		w = b.get("/alice/all_birthdays/3")
		assert.Equal(t, http.StatusOK, w.Code, "eleven birthdays need a third page")
	})
}
