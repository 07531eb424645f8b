//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   TokenRequest
		wantField string
	}{
		{"valid", TokenRequest{Subject: uuid.NewString()}, ""},
		{"valid with hours", TokenRequest{Subject: uuid.NewString(), Hours: 48}, ""},
		{"missing subject", TokenRequest{}, "subject"},
		{"subject not uuid", TokenRequest{Subject: "ingestor"}, "subject"},
		{"hours too large", TokenRequest{Subject: uuid.NewString(), Hours: 9000}, "hours"},
		{"negative hours", TokenRequest{Subject: uuid.NewString(), Hours: -1}, "hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := FieldErrors(err)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.wantField, fields[0].Field)
		})
	}
}

func TestRegisterProfileRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RegisterProfileRequest{Email: "dev@example.com"}).Validate())

	err := (&RegisterProfileRequest{Email: "not-an-email"}).Validate()
	require.Error(t, err)
	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "must be a valid email address", fields[0].Message)

	err = (&RegisterProfileRequest{}).Validate()
	require.Error(t, err)
	assert.Equal(t, "is required", FieldErrors(err)[0].Message)
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))

	fields := FieldErrors(errors.New("boom"))
	require.Len(t, fields, 1)
	assert.Empty(t, fields[0].Field)
	assert.Equal(t, "boom", fields[0].Message)

	type sample struct {
		Name  string `json:"name" validate:"required"`
		Limit int    `json:"limit" validate:"min=1,max=100"`
		Mode  string `json:"mode" validate:"oneof=a b"`
	}
	fields = FieldErrors(ValidateStruct(&sample{Limit: 500, Mode: "c"}))
	require.Len(t, fields, 3)
	assert.Equal(t, FieldError{Field: "name", Message: "is required"}, fields[0])
	assert.Equal(t, FieldError{Field: "limit", Message: "must be at most 100"}, fields[1])
	assert.Equal(t, FieldError{Field: "mode", Message: "must be one of [a b]"}, fields[2])
}
