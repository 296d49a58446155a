package handlers

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"birthdaybook/internal/validation"
	"birthdaybook/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// AddBirthdayForm is the parsed add-birthday submission. Up to three
// interests can be attached at creation time.
type AddBirthdayForm struct {
	Name      string `form:"birthday_name"`
	BirthDate string `form:"birthday_date"`
	Interest1 string `form:"interest1"`
	Interest2 string `form:"interest2"`
	Interest3 string `form:"interest3"`
}

func (f AddBirthdayForm) interests() []string {
	var interests []string
	for _, interest := range []string{f.Interest1, f.Interest2, f.Interest3} {
		if interest != "" {
			interests = append(interests, interest)
		}
	}
	return interests
}

// ShowHome renders the user dashboard.
func (h *Handler) ShowHome(c *gin.Context) {
	now := time.Now()
	session := sessions.Default(c)
	month, _ := session.Get(sessionMonth).(string)
	year, _ := session.Get(sessionYear).(int)
	if month == "" {
		month = utils.MonthName(int(now.Month()))
	}
	if year == 0 {
		year = now.Year()
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Username":     c.Param("username"),
		"CurrentMonth": month,
		"CurrentYear":  year,
		"Flash":        popFlash(c),
	})
}

func (h *Handler) ShowAddBirthday(c *gin.Context) {
	c.HTML(http.StatusOK, "add_birthday.html", gin.H{
		"Username": c.Param("username"),
		"Flash":    popFlash(c),
	})
}

func (h *Handler) HandleAddBirthday(c *gin.Context) {
	username := c.Param("username")
	_, userID := currentUser(c)

	var form AddBirthdayForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "add_birthday.html", gin.H{
			"Username": username,
			"Flash":    "Invalid input: " + err.Error(),
		})
		return
	}

	name := validation.NormalizeName(form.Name)
	interests := form.interests()

	birthDate, parseErr := time.Parse(dateLayout, form.BirthDate)
	dateParses := parseErr == nil

	existing, err := h.birthdays.AllBirthdaysForUser(userID)
	if err != nil {
		h.logger.Error("Failed to load birthdays", "error", err)
		c.HTML(http.StatusInternalServerError, "add_birthday.html", gin.H{
			"Username": username,
			"Flash":    "Something went wrong. Please try again.",
		})
		return
	}
	names := make([]string, 0, len(existing))
	for _, b := range existing {
		names = append(names, b.Name)
	}
	duplicate := validation.DuplicateBirthdayName(name, names)

	if msgs := validation.AddBirthdayMessages(name, form.BirthDate, dateParses, interests, duplicate); len(msgs) > 0 {
		c.HTML(http.StatusUnprocessableEntity, "add_birthday.html", gin.H{
			"Username": username,
			"Flash":    strings.Join(msgs, ", "),
			"Form":     form,
		})
		return
	}

	if err := h.birthdays.CreateBirthdayPerson(name, birthDate, interests, userID); err != nil {
		h.logger.Error("Failed to create birthday", "error", err)
		c.HTML(http.StatusInternalServerError, "add_birthday.html", gin.H{
			"Username": username,
			"Flash":    "Something went wrong. Please try again.",
		})
		return
	}

	h.audit.LogAction(&userID, "ADD_BIRTHDAY", name, c.ClientIP(), c.Request.UserAgent())

	setFlash(c, "You successfully added "+utils.DisplayName(name)+"!")
	c.Redirect(http.StatusFound, "/"+username+"/"+url.PathEscape(name))
}

// ShowBirthdayProfile renders one tracked person: name, date, and
// alphabetized interests.
func (h *Handler) ShowBirthdayProfile(c *gin.Context) {
	username := c.Param("username")
	name := strings.ToLower(c.Param("name"))
	_, userID := currentUser(c)

	person, err := h.birthdays.GetBirthdayPerson(name, userID)
	if err != nil {
		h.logger.Error("Failed to load birthday", "error", err)
		setFlash(c, "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}

	if person == nil {
		setFlash(c, utils.DisplayName(name)+" does not exist. Please try adding them!")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}

	interests, err := h.birthdays.InterestsForBirthdayPerson(person.ID)
	if err != nil {
		h.logger.Error("Failed to load interests", "error", err)
		setFlash(c, "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}
	sort.Slice(interests, func(i, j int) bool {
		return strings.ToLower(interests[i]) < strings.ToLower(interests[j])
	})

	// Remember the person's month so the home page can offer their calendar.
	session := sessions.Default(c)
	session.Set(sessionMonth, utils.MonthName(int(person.BirthDate.Month())))
	session.Set(sessionYear, time.Now().Year())
	invalidInterest, _ := session.Get(sessionInvalidInterest).(string)
	session.Delete(sessionInvalidInterest)
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "error", err)
	}

	c.HTML(http.StatusOK, "birthday_profile.html", gin.H{
		"Username":        username,
		"Name":            person.Name,
		"EscapedName":     url.PathEscape(person.Name),
		"BirthDate":       person.BirthDate.Format(dateLayout),
		"Interests":       interests,
		"InvalidInterest": invalidInterest,
		"Flash":           popFlash(c),
	})
}

func (h *Handler) HandleDeleteBirthday(c *gin.Context) {
	name := strings.ToLower(c.Param("name"))
	_, userID := currentUser(c)

	if err := h.birthdays.DeleteBirthdayPerson(name, userID); err != nil {
		h.logger.Error("Failed to delete birthday", "error", err)
		setFlash(c, "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/"+c.Param("username")+"/home")
		return
	}

	h.audit.LogAction(&userID, "DELETE_BIRTHDAY", name, c.ClientIP(), c.Request.UserAgent())

	setFlash(c, utils.DisplayName(name)+" has been deleted.")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) HandleAddInterest(c *gin.Context) {
	username := c.Param("username")
	name := strings.ToLower(c.Param("name"))
	_, userID := currentUser(c)
	interest := c.PostForm("new_interest")

	if validation.ValidInterest(interest) {
		if err := h.birthdays.CreateInterest(name, userID, interest); err != nil {
			h.logger.Error("Failed to add interest", "error", err)
			setFlash(c, "Something went wrong. Please try again.")
		} else {
			setFlash(c, "Successfully added an interest to "+utils.DisplayName(name)+".")
		}
	} else {
		session := sessions.Default(c)
		session.Set(sessionMessage, "Interest must be between 1 and 100 characters and cannot be only white space.")
		session.Set(sessionInvalidInterest, interest)
		if err := session.Save(); err != nil {
			h.logger.Error("Failed to save session", "error", err)
		}
	}

	c.Redirect(http.StatusFound, "/"+username+"/"+url.PathEscape(name))
}

func (h *Handler) HandleDeleteInterest(c *gin.Context) {
	username := c.Param("username")
	name := strings.ToLower(c.Param("name"))
	_, userID := currentUser(c)
	interest := c.PostForm("delete_interest")

	birthdayID, err := h.birthdays.BirthdayIDByName(name, userID)
	if err != nil {
		h.logger.Error("Failed to look up birthday", "error", err)
	} else if birthdayID != 0 {
		if err := h.birthdays.DeleteInterest(birthdayID, interest); err != nil {
			h.logger.Error("Failed to delete interest", "error", err)
		}
	}

	c.Redirect(http.StatusFound, "/"+username+"/"+url.PathEscape(name))
}
