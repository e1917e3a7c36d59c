package apierror

import (
	"context"
	"errors"
	"strings"

	threaderrors "github.com/sirseerhq/sirseer-threads/internal/errors"
)

// Inspector provides methods to classify API errors.
type Inspector interface {
	// IsAuthError returns true if the key was rejected or access was denied.
	IsAuthError(err error) bool

	// IsThrottleError returns true if the API refused the request for exceeding its rate.
	IsThrottleError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool
}

// MessageInspector classifies errors by their message text only.
type MessageInspector struct{}

// NewInspector returns an Inspector that checks sentinels in the error chain
// before falling back to message matching.
func NewInspector() Inspector {
	return &ChainInspector{base: &MessageInspector{}}
}

// IsAuthError checks for the error names and messages the API uses for key problems.
func (i *MessageInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "access_token_required") ||
		strings.Contains(errStr, "invalid_access_token") ||
		strings.Contains(errStr, "access_denied") ||
		strings.Contains(errStr, "key_required") ||
		strings.Contains(errStr, "invalid key")
}

// IsThrottleError checks for throttle violations and quota exhaustion.
func (i *MessageInspector) IsThrottleError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "throttle_violation") ||
		strings.Contains(errStr, "throttle violation") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *MessageInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// ChainInspector wraps a base inspector and checks the error chain for the
// application sentinels before asking the base inspector.
type ChainInspector struct {
	base Inspector
}

// NewChainInspector creates a ChainInspector over base.
func NewChainInspector(base Inspector) Inspector {
	return &ChainInspector{base: base}
}

// IsAuthError checks the error chain first, then falls back to base inspector.
func (c *ChainInspector) IsAuthError(err error) bool {
	if errors.Is(err, threaderrors.ErrInvalidKey) {
		return true
	}
	return c.base.IsAuthError(err)
}

// IsThrottleError checks the error chain first, then falls back to base inspector.
func (c *ChainInspector) IsThrottleError(err error) bool {
	if errors.Is(err, threaderrors.ErrThrottled) {
		return true
	}
	return c.base.IsThrottleError(err)
}

// IsNetworkError checks the error chain first, then falls back to base inspector.
// Context cancellation is not a network error even when it interrupts a request.
func (c *ChainInspector) IsNetworkError(err error) bool {
	if errors.Is(err, threaderrors.ErrNetworkFailure) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return c.base.IsNetworkError(err)
}
