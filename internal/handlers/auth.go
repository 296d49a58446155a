package handlers

import (
	"net/http"
	"strings"

	"birthdaybook/internal/validation"
	"birthdaybook/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ShowIndex renders the landing page, or sends an authenticated user to
// their home page.
func (h *Handler) ShowIndex(c *gin.Context) {
	username, _ := currentUser(c)
	if username != "" {
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Flash": popFlash(c)})
}

// RedirectToHome catches bare /:username requests that don't follow the
// URL scheme.
func (h *Handler) RedirectToHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+c.Param("username")+"/home")
}

func (h *Handler) ShowSignIn(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_in.html", gin.H{"Flash": popFlash(c)})
}

func (h *Handler) HandleSignIn(c *gin.Context) {
	username := strings.ToLower(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := h.users.FindUserCredentials(username)
	if err != nil {
		h.logger.Error("Failed to look up credentials", "error", err)
		c.HTML(http.StatusInternalServerError, "sign_in.html", gin.H{"Flash": "Something went wrong. Please try again."})
		return
	}

	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		c.HTML(http.StatusOK, "sign_in.html", gin.H{"Flash": "Invalid username or password. Please try again."})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUsername, user.Username)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionMessage, "Welcome, "+utils.DisplayName(user.Username)+"!")

	// Resume the path that originally bounced the user to sign-in.
	target := "/" + user.Username + "/home"
	if requested, ok := session.Get(sessionRequestedPath).(string); ok && requested != "" {
		session.Delete(sessionRequestedPath)
		target = requested
	}

	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "error", err)
		c.HTML(http.StatusInternalServerError, "sign_in.html", gin.H{"Flash": "Something went wrong. Please try again."})
		return
	}

	h.audit.LogAction(&user.ID, "LOGIN", user.Username, c.ClientIP(), c.Request.UserAgent())

	c.Redirect(http.StatusFound, target)
}

func (h *Handler) HandleSignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) ShowSignUp(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_up.html", gin.H{"Flash": popFlash(c)})
}

func (h *Handler) HandleSignUp(c *gin.Context) {
	username := strings.ToLower(c.PostForm("username"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	taken, err := h.users.UsernameExists(username)
	if err != nil {
		h.logger.Error("Failed to check username", "error", err)
		c.HTML(http.StatusInternalServerError, "sign_up.html", gin.H{"Flash": "Something went wrong. Please try again."})
		return
	}

	if msgs := validation.SignUpMessages(username, password, confirm, taken); len(msgs) > 0 {
		c.HTML(http.StatusOK, "sign_up.html", gin.H{
			"Flash":    strings.Join(msgs, ", "),
			"Username": username,
		})
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		h.logger.Error("Failed to hash password", "error", err)
		c.HTML(http.StatusInternalServerError, "sign_up.html", gin.H{"Flash": "Something went wrong. Please try again."})
		return
	}

	if err := h.users.CreateUser(username, hashed); err != nil {
		h.logger.Error("Failed to create user", "error", err)
		c.HTML(http.StatusInternalServerError, "sign_up.html", gin.H{"Flash": "Something went wrong. Please try again."})
		return
	}

	userID, err := h.users.UserIDByUsername(username)
	if err != nil {
		h.logger.Error("Failed to look up new user", "error", err)
		c.HTML(http.StatusInternalServerError, "sign_up.html", gin.H{"Flash": "Something went wrong. Please try again."})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUsername, username)
	session.Set(sessionUserID, userID)
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "error", err)
	}

	h.audit.LogAction(&userID, "REGISTER", username, c.ClientIP(), c.Request.UserAgent())

	c.Redirect(http.StatusFound, "/"+username+"/home")
}

func (h *Handler) HandleDeleteAccount(c *gin.Context) {
	username := strings.ToLower(c.Param("username"))
	_, userID := currentUser(c)

	if err := h.users.DeleteUser(username); err != nil {
		h.logger.Error("Failed to delete account", "error", err)
		setFlash(c, "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}

	h.audit.LogAction(&userID, "DELETE_ACCOUNT", username, c.ClientIP(), c.Request.UserAgent())

	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionMessage, username+" has been deleted.")
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "error", err)
	}

	c.Redirect(http.StatusFound, "/")
}
