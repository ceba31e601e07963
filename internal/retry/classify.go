package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/rpc"
)

type Kind int

const (
	Unknown Kind = iota
	FailFast
	Retryable
)

func (k Kind) String() string {
	switch k {
	case FailFast:
		return "FAIL_FAST"
	case Retryable:
		return "RETRYABLE"
	default:
		return "UNKNOWN"
	}
}

// Symbolic codes assigned by Normalize.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeCallException   = "CALL_EXCEPTION"
	CodeRateLimited     = "RATE_LIMITED"
	CodeServerError     = "SERVER_ERROR"
	CodeTimeout         = "TIMEOUT"
	CodeNetworkError    = "NETWORK_ERROR"
	CodeConnReset       = "ECONNRESET"
	CodeConnRefused     = "ECONNREFUSED"
	CodeConnTimedOut    = "ETIMEDOUT"
	CodeHostNotFound    = "ENOTFOUND"
)

// JSON-RPC error codes with a fixed meaning across node implementations.
const (
	rpcCodeInvalidParams  = -32602
	rpcCodeExecutionError = 3
	rpcCodeLimitExceeded  = -32005
)

var (
	failFastCodes = map[string]struct{}{
		CodeInvalidArgument: {},
		CodeCallException:   {},
	}

	retryableCodes = map[string]struct{}{
		CodeRateLimited:  {},
		CodeServerError:  {},
		CodeTimeout:      {},
		CodeNetworkError: {},
		CodeConnReset:    {},
		CodeConnRefused:  {},
		CodeConnTimedOut: {},
		CodeHostNotFound: {},
	}

	failFastMessages = []string{
		"invalid params",
		"invalid argument",
		"execution reverted",
		"reverted",
		"insufficient funds",
	}

	retryableMessages = []string{
		"connection reset",
		"connection refused",
		"econnreset",
		"econnrefused",
		"etimedout",
		"enotfound",
		"socket hang up",
		"broken pipe",
		"unexpected eof",
		"timeout",
		"timed out",
		"network is unreachable",
		"network error",
		"no such host",
		"too many requests",
		"rate limit",
		"temporarily unavailable",
	}

	throttleMessages = []string{
		"throttl",
		"rate limit",
		"too many requests",
		"limit exceeded",
		"quota",
	}
)

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }

func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as fail fast regardless of its content.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &permanentError{err: err}
}

// Normalized is the uniform view of any failure returned by an outbound call.
type Normalized struct {
	StatusCode int
	Code       string
	Message    string
}

func Normalize(err error) Normalized {
	if err == nil {
		return Normalized{}
	}

	n := Normalized{Message: strings.ToLower(err.Error())}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		n.StatusCode = httpErr.StatusCode
		if len(httpErr.Body) > 0 {
			n.Message += " " + strings.ToLower(string(httpErr.Body))
		}
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case rpcCodeInvalidParams:
			n.Code = CodeInvalidArgument
		case rpcCodeExecutionError:
			n.Code = CodeCallException
		case rpcCodeLimitExceeded:
			n.Code = CodeRateLimited
		}
	}

	if n.Code != "" {
		return n
	}

	var errno syscall.Errno
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.As(err, &errno):
		n.Code = errnoCode(errno)
	case errors.As(err, &dnsErr):
		n.Code = CodeHostNotFound
	case errors.Is(err, context.DeadlineExceeded):
		n.Code = CodeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		n.Code = CodeTimeout
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		n.Code = CodeNetworkError
	case n.StatusCode >= http.StatusInternalServerError:
		n.Code = CodeServerError
	case n.StatusCode == http.StatusTooManyRequests:
		n.Code = CodeRateLimited
	}

	return n
}

func errnoCode(errno syscall.Errno) string {
	switch {
	case errors.Is(errno, syscall.ECONNRESET):
		return CodeConnReset
	case errors.Is(errno, syscall.ECONNREFUSED):
		return CodeConnRefused
	case errors.Is(errno, syscall.ETIMEDOUT):
		return CodeConnTimedOut
	case errors.Is(errno, syscall.EPIPE):
		return CodeNetworkError
	}

	return ""
}

// Classify maps any error to FailFast, Retryable or Unknown. It is the only place inspecting raw error shapes.
func Classify(err error) Kind {
	if err == nil || errors.Is(err, context.Canceled) {
		return Unknown
	}

	var permanent *permanentError
	if errors.As(err, &permanent) {
		return FailFast
	}

	return ClassifyNormalized(Normalize(err))
}

func ClassifyNormalized(n Normalized) Kind {
	if n.StatusCode == http.StatusBadRequest || n.StatusCode == http.StatusUnauthorized {
		return FailFast
	}

	if _, found := failFastCodes[n.Code]; found {
		return FailFast
	}

	if containsAny(n.Message, failFastMessages) {
		return FailFast
	}

	switch {
	case n.StatusCode == http.StatusTooManyRequests:
		return Retryable
	case n.StatusCode >= http.StatusInternalServerError:
		return Retryable
	case n.StatusCode == http.StatusForbidden:
		if containsAny(n.Message, throttleMessages) {
			return Retryable
		}
		return Unknown
	}

	if _, found := retryableCodes[n.Code]; found {
		return Retryable
	}

	if containsAny(n.Message, retryableMessages) {
		return Retryable
	}

	return Unknown
}

func IsRetryable(err error) bool {
	return Classify(err) == Retryable
}

func IsFailFast(err error) bool {
	return Classify(err) == FailFast
}

func containsAny(message string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(message, p) {
			return true
		}
	}

	return false
}
