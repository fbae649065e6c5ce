package core

import (
	"errors"
	"fmt"
)

var (
	ErrProviderNotFound      = errors.New("wallet provider not found")
	ErrUserRejected          = errors.New("connection rejected by user")
	ErrRequestAlreadyPending = errors.New("connection request already pending")
	ErrVerificationFailed    = errors.New("silent verification failed")
	ErrStorageCorrupt        = errors.New("stored session is corrupt")
	ErrSessionNotFound       = errors.New("no stored session")
	ErrSessionExpired        = errors.New("stored session has expired")
	ErrUnknownWallet         = errors.New("unknown wallet type")
	ErrConnectInProgress     = errors.New("another connection attempt is in progress")
	ErrControlDisabled       = errors.New("wallet control is disabled")
	ErrAlreadyConnected      = errors.New("a wallet is already connected")
	ErrNotSelecting          = errors.New("wallet selection is not open")
	ErrCycleSuperseded       = errors.New("gate was reset during the attempt")
)

// ConnectionFailedError carries the provider's own message for unclassified failures
type ConnectionFailedError struct {
	Message string
}

func (e *ConnectionFailedError) Error() string {
	if e.Message == "" {
		return "connection failed"
	}
	return fmt.Sprintf("connection failed: %s", e.Message)
}

// ErrorLabel is the short text rendered on a wallet control after a failure
func ErrorLabel(err error) string {
	var failed *ConnectionFailedError
	switch {
	case errors.Is(err, ErrProviderNotFound):
		return "Not installed"
	case errors.Is(err, ErrUserRejected):
		return "Rejected"
	case errors.Is(err, ErrRequestAlreadyPending):
		return "Check wallet"
	case errors.As(err, &failed):
		return "Failed"
	case err == nil:
		return LabelIdle
	default:
		return "Error"
	}
}
