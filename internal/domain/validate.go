package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// checkText records a violation when value is blank (if required) or longer
// than max characters.
func checkText(errs *ValidationError, field, label, value string, required bool, max int) {
	if required && strings.TrimSpace(value) == "" {
		errs.Add(field, label+" cannot be blank")
		return
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		errs.Add(field, label+" cannot be more than "+strconv.Itoa(max)+" characters")
	}
}

func checkEmail(errs *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "Email cannot be blank")
		return
	}
	if err := validate.Var(value, "email"); err != nil {
		errs.Add(field, "must be a well-formed email address")
	}
}
