package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/artfolio/pkg/errors"
)

type profileForm struct {
	Username  string `json:"username" validate:"required,username"`
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"contact_email" validate:"omitempty,email"`
	Website   string `json:"website_url" validate:"omitempty,url"`
	Instagram string `json:"instagram_handle" validate:"omitempty,handle"`
	Status    string `json:"status" validate:"omitempty,oneof=draft published"`
}

func validForm() profileForm {
	return profileForm{Username: "mira_k", Name: "Mira Kowalski"}
}

func TestValidate_OK(t *testing.T) {
	f := validForm()
	f.Email = "mira@example.com"
	f.Website = "https://mira.art"
	f.Instagram = "@mira.paints"
	f.Status = "draft"
	assert.NoError(t, Validate(f))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	f := profileForm{Email: "nope", Website: "not a url"}
	err := Validate(f)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["username"])
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["contact_email"])
	assert.Equal(t, "must be a valid URL", fields["website_url"])
}

func TestValidate_Username(t *testing.T) {
	for _, u := range []string{"abc", "mira-k", "a_b_c", strings.Repeat("x", 30)} {
		f := validForm()
		f.Username = u
		assert.NoError(t, Validate(f), u)
	}
	for _, u := range []string{"ab", "Mira", "mira k", "mira.k", strings.Repeat("x", 31)} {
		f := validForm()
		f.Username = u
		err := Validate(f)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr, u)
		assert.Contains(t, valErr.Fields()["username"], "3-30 characters")
	}
}

func TestValidate_OneOf(t *testing.T) {
	f := validForm()
	f.Status = "archived"
	var valErr *ValidationError
	require.ErrorAs(t, Validate(f), &valErr)
	assert.Equal(t, "must be one of: draft published", valErr.Fields()["status"])
}

func TestValidationError_Error(t *testing.T) {
	f := validForm()
	f.Name = ""
	err := Validate(f)
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}

func TestDecodeAndValidate(t *testing.T) {
	var f profileForm
	err := DecodeAndValidate(strings.NewReader(`{"username":"mira_k","name":"Mira"}`), &f)
	require.NoError(t, err)
	assert.Equal(t, "mira_k", f.Username)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	var f profileForm
	err := DecodeAndValidate(strings.NewReader(`{"username":`), &f)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
