package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Errors collects field-level validation messages keyed by form field name.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Any reports whether any field has an error.
func (e Errors) Any() bool { return len(e) > 0 }

// LoginForm is the POST /login body.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`

	Errors Errors `form:"-"`
}

// SignupForm is the POST /signup body.
type SignupForm struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,min=6"`

	Errors Errors `form:"-"`
}

// NewLoginForm returns an empty login form ready for binding.
func NewLoginForm() LoginForm { return LoginForm{Errors: Errors{}} }

// NewSignupForm returns an empty signup form ready for binding.
func NewSignupForm() SignupForm { return SignupForm{Errors: Errors{}} }

func init() {
	// Report the form tag name from validator so errors land on the right field.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// FieldErrors translates a gin binding error into per-field messages.
func FieldErrors(err error) Errors {
	out := Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("form", "Invalid form submission.")
		return out
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return "Field must be at least " + fe.Param() + " characters long."
	default:
		return "Invalid value."
	}
}
