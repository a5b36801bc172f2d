package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/wordsmith-api/internal/domain"
)

// MaxBodyBytes bounds the size of a decoded request body.
const MaxBodyBytes = 1 << 20

// Global validator instance for reuse
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// notblank rejects empty and whitespace-only strings.
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return !field.IsZero()
		}
		return strings.TrimSpace(field.String()) != ""
	}); err != nil {
		// ALLOW-PANIC: registration only fails for an invalid tag name
		panic(err)
	}
	return v
}

// DecodeJSON decodes the request body into v. Any decoding failure is
// reported as domain.ErrInvalidArgument.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return domain.NewInvalidArgumentError("Malformed JSON request")
	}
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.NewInvalidArgumentError("Malformed JSON request"), err)
	}
	return nil
}

// ValidateRequest validates v with its `validate` struct tags. Violations
// are returned as a *domain.ValidationError, one item per failed field.
func ValidateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

// fieldMessage renders a validation failure the way the API reports it,
// e.g. "Title cannot be more than 50 characters".
func fieldMessage(fe validator.FieldError) string {
	label := Label(fe.Field())
	switch fe.Tag() {
	case "notblank":
		return label + " cannot be blank"
	case "required":
		return label + " cannot be null"
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "email":
		return "must be a well-formed email address"
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", label, zeroOr(fe.Param()))
	default:
		return label + " is invalid"
	}
}

func zeroOr(param string) string {
	if param == "" {
		return "0"
	}
	return param
}

// Label turns a camelCase field name into a sentence-case label:
// "firstName" becomes "First name".
func Label(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
