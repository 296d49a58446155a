package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"birthdaybook/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CalendarCell is one grid slot. Day 0 is a leading blank before the
// first of the month.
type CalendarCell struct {
	Day   int
	Names []string
}

// ShowCalendar renders the month grid with every tracked birthday on
// its day.
func (h *Handler) ShowCalendar(c *gin.Context) {
	username := c.Param("username")
	_, userID := currentUser(c)

	monthName := c.Param("name")
	year, _ := strconv.Atoi(c.Param("year"))
	month := utils.MonthNumber(monthName)

	if month == 0 || year <= 0 {
		setFlash(c, "Please enter a valid month and year.")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}

	birthdays, err := h.birthdays.BirthdaysForMonth(userID, month)
	if err != nil {
		h.logger.Error("Failed to load month birthdays", "error", err)
		setFlash(c, "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, "/"+username+"/home")
		return
	}

	byDay := make(map[int][]string)
	for name, day := range birthdays {
		byDay[day] = append(byDay[day], utils.DisplayName(name))
	}
	for _, names := range byDay {
		sort.Strings(names)
	}

	cells := make([]CalendarCell, 0, 37)
	for i := 0; i < utils.FirstWeekday(year, month); i++ {
		cells = append(cells, CalendarCell{})
	}
	for day := 1; day <= utils.DaysInMonth(year, month); day++ {
		cells = append(cells, CalendarCell{Day: day, Names: byDay[day]})
	}

	c.HTML(http.StatusOK, "calendar.html", gin.H{
		"Username": username,
		"Month":    utils.MonthName(month),
		"Year":     year,
		"Cells":    cells,
		"Flash":    popFlash(c),
	})
}

// RedirectToSelectedCalendar turns the month/year picker submission into
// a calendar URL for the signed-in user.
func (h *Handler) RedirectToSelectedCalendar(c *gin.Context) {
	username, _ := currentUser(c)
	if username == "" {
		c.Redirect(http.StatusFound, "/sign_in")
		return
	}

	month := c.Query("month")
	year, _ := strconv.Atoi(c.Query("year"))

	if year > 0 {
		c.Redirect(http.StatusFound, "/"+username+"/"+month+"/"+strconv.Itoa(year)+"/calendar")
		return
	}

	setFlash(c, "Please enter a valid year.")
	c.Redirect(http.StatusFound, "/"+username+"/home")
}
