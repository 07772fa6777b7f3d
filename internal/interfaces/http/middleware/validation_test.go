package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationPayload struct {
	Name     string `json:"name" binding:"required,max=5"`
	Quantity int    `json:"quantity" binding:"min=1"`
	Email    string `json:"email" binding:"omitempty,email"`
}

func bindPayload(t *testing.T, body string) error {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var p validationPayload
	return c.ShouldBindJSON(&p)
}

func TestValidationFields(t *testing.T) {
	SetupValidator()

	err := bindPayload(t, `{"name":"toolong","quantity":0,"email":"nope"}`)
	require.Error(t, err)

	fields := ValidationFields(err)
	byField := make(map[string]string, len(fields))
	for _, f := range fields {
		byField[f.Field] = f.Message
	}

	assert.Equal(t, "Must be at most 5 characters", byField["name"])
	assert.Equal(t, "Must be at least 1", byField["quantity"])
	assert.Equal(t, "Invalid email format", byField["email"])
}

func TestValidationFields_Required(t *testing.T) {
	SetupValidator()

	fields := ValidationFields(bindPayload(t, `{"quantity":2}`))
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "This field is required", fields[0].Message)
}

func TestValidationFields_NotValidatorError(t *testing.T) {
	assert.Nil(t, ValidationFields(errors.New("unexpected EOF")))
	assert.Nil(t, ValidationFields(bindPayload(t, `{"name":`)))
}
