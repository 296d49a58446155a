package handlers

import (
	"html/template"

	"birthdaybook/internal/services"
	"birthdaybook/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string) *gin.Engine {
	r := gin.Default()

	r.SetFuncMap(template.FuncMap{
		"displayName": utils.DisplayName,
		"mod":         func(a, b int) int { return a % b },
	})

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}

	// Middleware
	r.Use(cors.Default())
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("birthdaybook_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public routes
	r.GET("/", h.ShowIndex)
	r.GET("/sign_in", h.ShowSignIn)
	r.POST("/sign_in", h.HandleSignIn)
	r.POST("/sign_out", h.HandleSignOut)
	r.GET("/sign_up", h.ShowSignUp)
	r.POST("/sign_up", h.HandleSignUp)
	r.GET("/redirect_to_selected_calendar", h.RedirectToSelectedCalendar)

	// Bare username, outside the guarded group: nudge towards the home page.
	r.GET("/:username", h.RedirectToHome)

	// Owner-scoped routes
	owner := r.Group("/:username")
	owner.Use(h.RequireOwner())
	{
		owner.GET("/home", h.ShowHome)
		owner.POST("/delete_account", h.HandleDeleteAccount)
		owner.GET("/add_birthday", h.ShowAddBirthday)
		owner.POST("/add_birthday", h.HandleAddBirthday)
		owner.GET("/all_birthdays", h.RedirectToFirstPage)
		owner.GET("/all_birthdays/:page", h.ShowAllBirthdays)
		owner.GET("/:name", h.ShowBirthdayProfile)
		owner.POST("/:name/delete", h.HandleDeleteBirthday)
		owner.POST("/:name/add_interest", h.HandleAddInterest)
		owner.POST("/:name/delete_interest", h.HandleDeleteInterest)
		owner.GET("/:name/:year/calendar", h.ShowCalendar)
	}

	return r
}
