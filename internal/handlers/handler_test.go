package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"

	"birthdaybook/internal/config"
	"birthdaybook/internal/models"
	"birthdaybook/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{}, &models.Birthday{}, &models.Interest{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret: "test-secret-12345678901234567890123456789012",
	}

	users := services.NewUserService(db, logger)
	birthdays := services.NewBirthdayService(db, nil, logger)
	audit := services.NewAuditService(db, logger)

	h := NewHandler(cfg, logger, db, nil, users, birthdays, audit)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil, "../../web/templates/*")
}

func newTestRouterWithLimiter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := services.NewIPRateLimiter(1, 2, h.logger)
	return h.SetupRouter(limiter, "../../web/templates/*")
}

// browser carries the session cookie between requests, the way a real
// client would.
type browser struct {
	r      *gin.Engine
	cookie string
}

func newBrowser(r *gin.Engine) *browser {
	return &browser{r: r}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req, _ = http.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if b.cookie != "" {
		req.Header.Set("Cookie", b.cookie)
	}

	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)

	var parts []string
	for _, c := range w.Result().Cookies() {
		parts = append(parts, c.Name+"="+c.Value)
	}
	if len(parts) > 0 {
		b.cookie = strings.Join(parts, "; ")
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do("GET", path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do("POST", path, form)
}

// signUp registers a user and leaves the browser signed in.
func (b *browser) signUp(username, password string) *httptest.ResponseRecorder {
	return b.post("/sign_up", url.Values{
		"username":         {username},
		"password":         {password},
		"confirm_password": {password},
	})
}

func (b *browser) addBirthday(username, name, date string, interests ...string) *httptest.ResponseRecorder {
	form := url.Values{
		"birthday_name": {name},
		"birthday_date": {date},
	}
	keys := []string{"interest1", "interest2", "interest3"}
	for i, interest := range interests {
		form.Set(keys[i], interest)
	}
	return b.post("/"+username+"/add_birthday", form)
}
