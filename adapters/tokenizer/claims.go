package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims carry a session record. Timestamp keeps millisecond precision,
// which the registered iat claim does not.
type SessionClaims struct {
	jwt.RegisteredClaims
	WalletType string `json:"wlt"`
	PublicKey  string `json:"pub,omitempty"`
	Timestamp  int64  `json:"ts"`
}
