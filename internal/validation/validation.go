// Package validation holds the pure input rules for sign-up and birthday
// forms. Nothing here touches the database; callers pass in whatever
// stored state a rule needs (taken usernames, existing birthday names).
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"birthdaybook/pkg/utils"
)

const maxFieldLength = 100

// ValidUsername reports whether a username is non-empty, at most 100
// characters, and contains no spaces.
func ValidUsername(username string) bool {
	if strings.Contains(username, " ") {
		return false
	}
	n := utf8.RuneCountInString(username)
	return n >= 1 && n <= maxFieldLength
}

// ValidBirthdayName reports whether a birthday person's name, after
// trimming, is 1-100 characters and free of '/' and '\'. Unlike
// usernames, names may contain spaces.
func ValidBirthdayName(name string) bool {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	return n >= 1 && n <= maxFieldLength && !strings.ContainsAny(trimmed, `/\`)
}

// ValidInterest reports whether an interest, after trimming, is 1-100
// characters.
func ValidInterest(interest string) bool {
	trimmed := strings.TrimSpace(interest)
	n := utf8.RuneCountInString(trimmed)
	return n >= 1 && n <= maxFieldLength
}

func ValidInterests(interests []string) bool {
	for _, interest := range interests {
		if !ValidInterest(interest) {
			return false
		}
	}
	return true
}

// DuplicateBirthdayName reports whether name matches any existing name
// case-insensitively.
func DuplicateBirthdayName(name string, existing []string) bool {
	for _, e := range existing {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}

// NormalizeName downcases a name and collapses runs of whitespace to
// single spaces, the form every name takes before it is stored.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// SignUpMessages collects every violated sign-up rule. Empty means the
// input is acceptable. usernameTaken is the storage layer's
// case-insensitive existence check, supplied by the caller.
func SignUpMessages(username, password, confirmPassword string, usernameTaken bool) []string {
	var msgs []string
	if username == "" {
		msgs = append(msgs, "Name is required")
	}
	if !ValidUsername(username) {
		msgs = append(msgs, "Username must be between 1 and 100 characters and no spaces")
	}
	if password != confirmPassword {
		msgs = append(msgs, "Passwords must match")
	}
	if usernameTaken {
		msgs = append(msgs, fmt.Sprintf("%s already exists - please try a different name", username))
	}
	if password == "" || confirmPassword == "" {
		msgs = append(msgs, "Password cannot be empty")
	}
	return msgs
}

// AddBirthdayMessages collects every violated add-birthday rule.
// dateParses is whether a non-empty birthDate parsed as a calendar date;
// duplicate is the caller's case-insensitive check against the user's
// existing birthday names.
func AddBirthdayMessages(name, birthDate string, dateParses bool, interests []string, duplicate bool) []string {
	var msgs []string
	if name == "" {
		msgs = append(msgs, "Name is required")
	}
	if birthDate == "" {
		msgs = append(msgs, "Date is required")
	} else if !dateParses {
		msgs = append(msgs, "Date must be a valid date in YYYY-MM-DD format")
	}
	if strings.ContainsAny(name, `/\`) {
		msgs = append(msgs, `Name cannot contain / or \`)
	} else if name != "" && !ValidBirthdayName(name) {
		msgs = append(msgs, "Name must be between 1 and 100 characters")
	}
	if !ValidInterests(interests) {
		msgs = append(msgs, "Interest must be between 1 and 100 characters and cannot be only white space.")
	}
	if duplicate {
		msgs = append(msgs, fmt.Sprintf("%s already exists.", utils.DisplayName(name)))
	}
	return msgs
}
