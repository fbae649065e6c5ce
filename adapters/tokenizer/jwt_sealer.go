package tokenizer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/layer-3/walletgate/core"
)

const AudienceSession = "walletgate:session"

// JWTSealer implements ports.Sealer with ES256 tokens
type JWTSealer struct {
	signKey *ecdsa.PrivateKey
	now     func() time.Time
}

// NewJWTSealer creates a sealer signing with signKey
func NewJWTSealer(signKey *ecdsa.PrivateKey) *JWTSealer {
	return &JWTSealer{signKey: signKey, now: time.Now}
}

// Seal signs record; the token expires ttl after the record timestamp
func (j *JWTSealer) Seal(record core.SessionRecord, ttl time.Duration) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}

	created := record.CreatedAt()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   record.Address,
			ExpiresAt: jwt.NewNumericDate(created.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(created),
			Audience:  jwt.ClaimStrings{AudienceSession},
		},
		WalletType: string(record.WalletType),
		PublicKey:  record.PublicKey,
		Timestamp:  record.Timestamp,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	return signedToken, nil
}

// Open verifies a sealed record. An expired seal yields core.ErrSessionExpired,
// anything else unreadable core.ErrStorageCorrupt.
func (j *JWTSealer) Open(sealed string) (core.SessionRecord, error) {
	token, err := jwt.ParseWithClaims(sealed, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &j.signKey.PublicKey, nil
	}, jwt.WithAudience(AudienceSession), jwt.WithTimeFunc(j.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return core.SessionRecord{}, core.ErrSessionExpired
		}
		return core.SessionRecord{}, fmt.Errorf("%w: %v", core.ErrStorageCorrupt, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return core.SessionRecord{}, fmt.Errorf("%w: invalid claims", core.ErrStorageCorrupt)
	}

	record := core.SessionRecord{
		WalletType: core.WalletType(claims.WalletType),
		Timestamp:  claims.Timestamp,
		PublicKey:  claims.PublicKey,
		Address:    claims.Subject,
	}
	if err := record.Validate(); err != nil {
		return core.SessionRecord{}, err
	}

	return record, nil
}
