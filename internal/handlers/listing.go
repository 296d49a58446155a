package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"birthdaybook/internal/models"
	"birthdaybook/pkg/utils"

	"github.com/gin-gonic/gin"
)

const birthdaysPerPage = 5

// BirthdayEntry is one row of the all-birthdays listing.
type BirthdayEntry struct {
	Name        string
	EscapedName string
	BirthDate   string
	Month       string
}

func (h *Handler) RedirectToFirstPage(c *gin.Context) {
	c.Redirect(http.StatusFound, "/"+c.Param("username")+"/all_birthdays/1")
}

// ShowAllBirthdays renders one page of the user's birthdays, sorted by
// (month, day) ascending, five per page.
func (h *Handler) ShowAllBirthdays(c *gin.Context) {
	username := c.Param("username")
	_, userID := currentUser(c)
	page, _ := strconv.Atoi(c.Param("page"))

	birthdays, err := h.birthdays.AllBirthdaysForUser(userID)
	if err != nil {
		h.logger.Error("Failed to load birthdays", "error", err)
		setFlash(c, "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}

	if len(birthdays) == 0 {
		setFlash(c, "You are not keeping track of any birthdays! Please add some first.")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}

	sort.SliceStable(birthdays, func(i, j int) bool {
		mi, mj := birthdays[i].BirthDate.Month(), birthdays[j].BirthDate.Month()
		if mi != mj {
			return mi < mj
		}
		return birthdays[i].BirthDate.Day() < birthdays[j].BirthDate.Day()
	})

	highestPage := (len(birthdays) + birthdaysPerPage - 1) / birthdaysPerPage

	if page < 1 || page > highestPage {
		setFlash(c, fmt.Sprintf("%d is not a valid page. Please try a page less than %d and greater than 0.", page, highestPage))
		c.Redirect(http.StatusFound, "/"+username+"/all_birthdays")
		return
	}

	start := (page - 1) * birthdaysPerPage
	end := start + birthdaysPerPage
	if end > len(birthdays) {
		end = len(birthdays)
	}

	entries := make([]BirthdayEntry, 0, end-start)
	for _, b := range birthdays[start:end] {
		entries = append(entries, birthdayEntry(b))
	}

	pages := make([]int, highestPage)
	for i := range pages {
		pages[i] = i + 1
	}

	c.HTML(http.StatusOK, "all_birthdays.html", gin.H{
		"Username":     username,
		"Birthdays":    entries,
		"Pages":        pages,
		"CurrentPage":  page,
		"PreviousPage": page - 1,
		"NextPage":     page + 1,
		"HighestPage":  highestPage,
		"Flash":        popFlash(c),
	})
}

func birthdayEntry(b models.Birthday) BirthdayEntry {
	return BirthdayEntry{
		Name:        utils.DisplayName(b.Name),
		EscapedName: url.PathEscape(b.Name),
		BirthDate:   b.BirthDate.Format(dateLayout),
		Month:       utils.MonthName(int(b.BirthDate.Month())),
	}
}
