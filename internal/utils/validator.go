package utils

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
)

// ValidateRegistration checks the signup fields and returns per-field messages.
func ValidateRegistration(username, email, phone, password string) map[string]string {
	errs := ValidateLogin(email, password)
	if errs == nil {
		errs = map[string]string{}
	}
	name := strings.TrimSpace(username)
	if len(name) < 3 {
		errs["username"] = "Name must be at least 3 characters long"
	} else if len(name) > 30 {
		errs["username"] = "Name must not exceed 30 characters"
	}
	if !phoneRe.MatchString(phone) {
		errs["phone"] = "Phone number must be 10 digits long"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(email, password string) map[string]string {
	errs := map[string]string{}
	if !emailRe.MatchString(email) {
		errs["email"] = "Invalid email format"
	}
	if len(password) < 6 {
		errs["password"] = "Password must be at least 6 characters long"
	} else if len(password) > 50 {
		errs["password"] = "Password must not exceed 50 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
