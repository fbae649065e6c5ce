package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/layer-3/walletgate/core"
)

const (
	// CodeUserRejected is the EIP-1193 code for a rejected request, also used by Phantom
	CodeUserRejected = 4001

	// CodeRequestPending is MetaMask's code for a permission request that is already open
	CodeRequestPending = -32002
)

var rejectionPhrases = []string{"user rejected", "rejected the request", "user denied"}

// ProviderError is an error carrying a provider error code
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// ErrorCode matches go-ethereum's rpc.Error interface
func (e *ProviderError) ErrorCode() int {
	return e.Code
}

type codedError interface {
	ErrorCode() int
}

// classify maps a provider failure onto the gate's error taxonomy
func classify(err error) error {
	var coded codedError
	if errors.As(err, &coded) {
		switch coded.ErrorCode() {
		case CodeUserRejected:
			return fmt.Errorf("%w: %s", core.ErrUserRejected, err.Error())
		case CodeRequestPending:
			return fmt.Errorf("%w: %s", core.ErrRequestAlreadyPending, err.Error())
		}
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range rejectionPhrases {
		if strings.Contains(msg, phrase) {
			return fmt.Errorf("%w: %s", core.ErrUserRejected, err.Error())
		}
	}

	return &core.ConnectionFailedError{Message: err.Error()}
}

func notVerified(reason error) error {
	return fmt.Errorf("%w: %w", core.ErrVerificationFailed, reason)
}

// firstNonEmpty returns the first lookup that yields a non-empty value
func firstNonEmpty(lookups ...func() string) string {
	for _, lookup := range lookups {
		if v := strings.TrimSpace(lookup()); v != "" {
			return v
		}
	}
	return ""
}
