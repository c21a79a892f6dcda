package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupFormValid(t *testing.T) {
	f := SignupForm{Username: "alice", Email: "alice@example.com", Password: "hunter22"}
	assert.False(t, f.Validate().Any())
}

func TestSignupFormRules(t *testing.T) {
	cases := []struct {
		name  string
		form  SignupForm
		field string
	}{
		{"missing username", SignupForm{Email: "a@b.com", Password: "hunter22"}, "Username"},
		{"missing email", SignupForm{Username: "alice", Password: "hunter22"}, "Email"},
		{"bad email", SignupForm{Username: "alice", Email: "not-an-email", Password: "hunter22"}, "Email"},
		{"short password", SignupForm{Username: "alice", Email: "a@b.com", Password: "abc"}, "Password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.form.Validate()
			assert.True(t, errs.Any())
			assert.NotEmpty(t, errs[tc.field])
		})
	}
}

func TestLoginForm(t *testing.T) {
	assert.False(t, LoginForm{Username: "alice", Password: "hunter22"}.Validate().Any())
	assert.True(t, LoginForm{Username: "", Password: "hunter22"}.Validate().Any())
	assert.True(t, LoginForm{Username: "alice", Password: "abc"}.Validate().Any())
}

func TestMessageForm(t *testing.T) {
	assert.False(t, MessageForm{Text: "hello world"}.Validate().Any())
	assert.True(t, MessageForm{Text: ""}.Validate().Any())

	long := make([]byte, 141)
	for i := range long {
		long[i] = 'x'
	}
	assert.True(t, MessageForm{Text: string(long)}.Validate().Any())
}

func TestProfileEditFormBlankFieldsAllowed(t *testing.T) {
	// everything blank except the confirming password
	f := ProfileEditForm{Password: "hunter22"}
	assert.False(t, f.Validate().Any())

	assert.True(t, ProfileEditForm{Password: "abc"}.Validate().Any())
	assert.True(t, ProfileEditForm{Email: "nope", Password: "hunter22"}.Validate().Any())
}
