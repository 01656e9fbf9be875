package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,role"`
	Password string `json:"password" validate:"required,min=8"`
	Confirm  string `json:"confirmPassword" validate:"eqfield=Password"`
}

type slot struct {
	Day   string `json:"day" validate:"required,weekday"`
	Start string `json:"startAt" validate:"omitempty,clock"`
}

type week struct {
	Slots []slot `json:"schedule" validate:"dive"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(registerForm{Email: "a@b.co", Role: "dj", Password: "password1", Confirm: "password1"}))
	require.NoError(t, v.Struct(week{Slots: []slot{{Day: "Saturday", Start: "20:00"}, {Day: "Monday"}}}))
}

func TestStruct_FieldMessages(t *testing.T) {
	v := New()

	err := v.Struct(registerForm{Email: "nope", Role: "PILOT", Password: "short", Confirm: "other"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be a valid email address", ve.Fields["email"])
	assert.Equal(t, "must be a valid role", ve.Fields["role"])
	assert.Equal(t, "must be at least 8 characters long", ve.Fields["password"])
	assert.Contains(t, ve.Fields, "confirmPassword")
	assert.Contains(t, ve.Error(), "email: must be a valid email address")

	err = v.Struct(week{Slots: []slot{{Day: "Funday", Start: "25:00"}}})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be a weekday name", ve.Fields["schedule[0].day"])
	assert.Equal(t, "must be a time in HH:MM format", ve.Fields["schedule[0].startAt"])
}
