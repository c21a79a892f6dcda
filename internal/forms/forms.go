// Package forms declares the typed inputs of every form-posting endpoint
// and their validation rules. Validation is pure: it never touches the
// data store, it only yields a field -> messages map.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors maps a form field to its human-readable problems.
type Errors map[string][]string

func (e Errors) Any() bool { return len(e) > 0 }

// SignupForm is the input of POST /signup.
type SignupForm struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"min=6"`
	ImageURL string `form:"image_url" validate:"omitempty,url|uri"`
}

// LoginForm is the input of POST /login.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"min=6"`
}

// MessageForm is the input of POST /messages/new.
type MessageForm struct {
	Text string `form:"text" validate:"required,max=140"`
}

// ProfileEditForm is the input of POST /users/profile. Every field except
// the confirming password may be left blank, meaning "keep current value".
type ProfileEditForm struct {
	Username       string `form:"username" validate:"omitempty"`
	Email          string `form:"email" validate:"omitempty,email"`
	ImageURL       string `form:"image_url" validate:"omitempty"`
	HeaderImageURL string `form:"header_image_url" validate:"omitempty"`
	Bio            string `form:"bio" validate:"omitempty"`
	Location       string `form:"location" validate:"omitempty"`
	Password       string `form:"password" validate:"min=6"`
}

func (f SignupForm) Validate() Errors      { return check(f) }
func (f LoginForm) Validate() Errors       { return check(f) }
func (f MessageForm) Validate() Errors     { return check(f) }
func (f ProfileEditForm) Validate() Errors { return check(f) }

func check(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"form": {"invalid input"}}
	}
	out := Errors{}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid e-mail address."
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "url", "uri", "url|uri":
		return "Enter a valid URL."
	default:
		return "Invalid value."
	}
}
