package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/library-membership/internal/model"
	"github.com/iliyamo/library-membership/internal/repository"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// memberRules mirrors the member fields that carry constraints. Field
// names in messages come from the json tags.
type memberRules struct {
	Name            string  `json:"name" validate:"required"`
	Contact         string  `json:"contact" validate:"required"`
	Aadhar          string  `json:"aadhar" validate:"required"`
	Shift           string  `json:"shift" validate:"required,oneof=Morning Afternoon Evening Night Day Custom"`
	CustomStartTime *string `json:"customStartTime"`
	CustomEndTime   *string `json:"customEndTime"`
	MonthlyFees     float64 `json:"monthlyFees" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(customShiftRule, memberRules{})
	return v
}

// customShiftRule requires HH:MM start and end times for the Custom shift.
func customShiftRule(sl validator.StructLevel) {
	r := sl.Current().Interface().(memberRules)
	if r.Shift != model.ShiftCustom {
		return
	}
	if r.CustomStartTime == nil || !clockPattern.MatchString(*r.CustomStartTime) {
		sl.ReportError(r.CustomStartTime, "customStartTime", "CustomStartTime", "clock", "")
	}
	if r.CustomEndTime == nil || !clockPattern.MatchString(*r.CustomEndTime) {
		sl.ReportError(r.CustomEndTime, "customEndTime", "CustomEndTime", "clock", "")
	}
}

// validateMember trims text fields, clears custom times outside the
// Custom shift and checks the remaining constraints. Every violation
// is reported in one *repository.ValidationError.
func validateMember(m *model.Member) error {
	m.Name = strings.TrimSpace(m.Name)
	m.FatherName = strings.TrimSpace(m.FatherName)
	m.Contact = strings.TrimSpace(m.Contact)
	m.Aadhar = strings.TrimSpace(m.Aadhar)
	m.Shift = strings.TrimSpace(m.Shift)
	if m.Shift != model.ShiftCustom {
		m.CustomStartTime, m.CustomEndTime = nil, nil
	}

	err := validate.Struct(memberRules{
		Name:            m.Name,
		Contact:         m.Contact,
		Aadhar:          m.Aadhar,
		Shift:           m.Shift,
		CustomStartTime: m.CustomStartTime,
		CustomEndTime:   m.CustomEndTime,
		MonthlyFees:     m.MonthlyFees,
	})
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &repository.ValidationError{Messages: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "clock":
		return fmt.Sprintf("%s must be a HH:MM time for the Custom shift", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
