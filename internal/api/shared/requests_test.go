package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name": "test", "age": 30}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &target))
	assert.Equal(t, "test", target.Name)
	assert.Equal(t, 30, target.Age)

	req = httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name": "test",}`))
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &target))
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"name": "` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))

	var target struct {
		Name string `json:"name"`
	}
	err := DecodeJSON(httptest.NewRecorder(), req, &target)

	var maxErr *http.MaxBytesError
	assert.True(t, errors.As(err, &maxErr))
}

type selfValidating struct {
	Name string
}

func (s *selfValidating) Validate() error {
	if s.Name == "invalid" {
		return errors.New("invalid name")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&selfValidating{Name: "ok"}))
	assert.Error(t, ValidateRequest(&selfValidating{Name: "invalid"}))

	type tagged struct {
		Correct *bool `validate:"required"`
	}
	assert.Error(t, ValidateRequest(&tagged{}))

	f := false
	assert.NoError(t, ValidateRequest(&tagged{Correct: &f}), "required checks presence, not truthiness")
}
