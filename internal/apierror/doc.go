// Package apierror classifies errors raised while talking to the Stack Exchange API.
//
// The collector wraps the sentinels from internal/errors wherever it can, but
// errors coming straight from net/http or from older wrapping code only carry
// a message. The Inspector answers the questions the CLI needs for exit codes
// (is this an auth problem, a throttle, a network failure) by checking the
// error chain first and falling back to message matching.
package apierror
