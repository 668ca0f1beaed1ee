// Package validation kiểm tra body của request trước khi tới store.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/biosecret/task-tracker/models"
	"github.com/go-playground/validator/v10"
)

// FieldError mô tả một trường không hợp lệ
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error là lỗi ShapeValidation, trả về 422
type Error struct {
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Message)
	}
	return e.Message + ": " + strings.Join(msgs, "; ")
}

// Malformed bọc lỗi parse body hoặc path param thành lỗi ShapeValidation
func Malformed(err error) *Error {
	return &Error{Message: "invalid request: " + err.Error()}
}

// Validator kiểm tra struct theo tag `validate`
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New tạo Validator với đồng hồ now, dùng cho rule notpast
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(), now: now}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// RegisterValidation chỉ lỗi khi tag rỗng hoặc trùng tag có sẵn
	if err := v.validate.RegisterValidation("notpast", v.notPast); err != nil {
		panic(err)
	}
	return v
}

// Today là ngày hiện tại theo đồng hồ của Validator
func (v *Validator) Today() models.Date {
	return models.NewDate(v.now())
}

func (v *Validator) notPast(fl validator.FieldLevel) bool {
	switch d := fl.Field().Interface().(type) {
	case models.Date:
		return !d.Before(v.Today())
	case time.Time:
		return !models.NewDate(d).Before(v.Today())
	}
	return false
}

// Struct trả về *Error nếu s không hợp lệ
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Malformed(err)
	}

	out := &Error{Message: "validation failed"}
	for _, fe := range verrs {
		out.Details = append(out.Details, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "notpast":
		return "Due date cannot be in the past."
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
