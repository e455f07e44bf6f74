package guideapi

import (
	"errors"
	"fmt"
	"strings"
)

// NetworkError reports a transport failure reaching the backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a reachable backend that answered with a non-ok status
// or success=false. Detail carries the server's human readable reason, if any.
type ServerError struct {
	Op     string
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("%s returned status %d", e.Op, e.Status)
	if e.Status == 0 {
		msg = fmt.Sprintf("%s reported failure", e.Op)
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// AuthError reports that no access token could be obtained.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("access token: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsNetwork reports whether err was caused by a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// Detail returns the server supplied detail carried by err, or "".
func Detail(err error) string {
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return strings.TrimSpace(srvErr.Detail)
	}
	return ""
}
