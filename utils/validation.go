package utils

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonAlnumRuns = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// ValidateEmail checks if the email is well formed
func ValidateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format. Please enter a valid email address"
	}
	return true, ""
}

// ValidatePassword checks the minimum password length in characters
func ValidatePassword(password string) (bool, string) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false, ErrPasswordTooShort
	}
	return true, ""
}

// MissingFields returns the names whose values are blank, in the given order
func MissingFields(names []string, values ...string) []string {
	var missing []string
	for i, v := range values {
		if strings.TrimSpace(v) == "" && i < len(names) {
			missing = append(missing, names[i])
		}
	}
	return missing
}

// BindError converts a gin binding failure into a ValidationError with a
// readable message
func BindError(err error) *AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return ValidationError(strings.Join(msgs, "; "))
	}
	if errors.Is(err, io.EOF) {
		return ValidationError("Request body is required")
	}
	return ValidationError("Invalid request: " + err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "dive":
		return field + " is invalid"
	}
	return field + " is invalid"
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SanitizeFilename folds accents, replaces every non ASCII-alphanumeric
// character with '-' and caps the result at MaxUploadBaseName characters.
func SanitizeFilename(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	clean := nonAlnumRuns.ReplaceAllString(folded, "-")
	if len(clean) > MaxUploadBaseName {
		clean = clean[:MaxUploadBaseName]
	}
	if strings.Trim(clean, "-") == "" {
		return "file"
	}
	return clean
}
