package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/oti-labs/studify-api/internal/models"
)

var hhmmPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// NewValidator builds the request validator with the schedule-specific
// rules registered: weekday names, HH:MM clock values and YYYY-MM-DD
// dates.
func NewValidator() *validator.Validate {
	v := validator.New()

	// Case-insensitive: requests arrive as "monday" or "Monday" and are
	// upper-cased during normalisation after validation passes.
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		day := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
		return models.Weekday(day).Valid()
	})

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	return v
}
