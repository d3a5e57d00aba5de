package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type supplierInput struct {
	Name        string `json:"name"        validate:"required"`
	ContactInfo string `json:"contactInfo" validate:"required"`
}

func post(body string) (*httptest.ResponseRecorder, *http.Request) {
	return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONValid(t *testing.T) {
	w, r := post(`{"name":"Acme","contactInfo":"acme@example.com"}`)
	var in supplierInput

	errs, err := JSON(w, r, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "Acme", in.Name)
}

func TestJSONValidationErrors(t *testing.T) {
	w, r := post(`{"name":"Acme"}`)
	var in supplierInput

	errs, err := JSON(w, r, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "contactInfo")
}

func TestJSONMalformed(t *testing.T) {
	w, r := post(`{"name":`)
	_, err := JSON(w, r, &supplierInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestJSONEmpty(t *testing.T) {
	w, r := post(``)
	_, err := JSON(w, r, &supplierInput{})
	assert.ErrorIs(t, err, ErrEmptyBody)
}
