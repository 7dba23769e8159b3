package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("formats with provider name", func(t *testing.T) {
		err := NewConfigError("work-gitlab", "kind %q is not supported", "gitea")
		assert.Contains(t, err.Error(), `provider "work-gitlab"`)
		assert.Contains(t, err.Error(), "gitea")
	})

	t.Run("formats without provider name", func(t *testing.T) {
		err := &ConfigError{Reason: "broken"}
		assert.Equal(t, "config: broken", err.Error())
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		err := fmt.Errorf("resolve providers: %w", NewConfigError("x", "no kind"))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{Provider: "github", StatusCode: 422, Message: "validation failed"}
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "github")

	assert.False(t, IsUnauthorized(err))
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
}

func TestNetworkError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	err := &NetworkError{Provider: "bitbucket", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "bitbucket")
}

func TestDecodeError_Unwrap(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &DecodeError{Provider: "gitlab", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "decode")
}
