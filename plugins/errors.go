package plugins

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure reasons carried by ProviderError. Orchestration only branches on
// these, never on provider-specific error text.
const (
	ReasonTimeout = "timeout"
	ReasonNetwork = "network"
	ReasonStatus  = "status"
	ReasonPayload = "payload"
)

// ProviderError wraps any failure from a provider client with the provider
// name and a coarse reason
type ProviderError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Reason classifies a transport error into one of the failure reasons
func Reason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ReasonTimeout
		}
		return ReasonNetwork
	}
	return ReasonNetwork
}

// Transient reports whether a request is worth a single immediate retry
func Transient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	r := Reason(err)
	return r == ReasonNetwork || r == ReasonTimeout
}
