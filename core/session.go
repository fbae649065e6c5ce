package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultSessionTTL is how long a persisted session stays resumable
const DefaultSessionTTL = 24 * time.Hour

// SessionRecord is the persisted proof of a prior successful connection
type SessionRecord struct {
	WalletType WalletType `json:"walletType"`
	Timestamp  int64      `json:"timestamp"` // epoch milliseconds
	PublicKey  string     `json:"publicKey"`
	Address    string     `json:"address"`
}

// NewSessionRecord stamps a connection result with the given time
func NewSessionRecord(res ConnectionResult, now time.Time) SessionRecord {
	pub := res.PublicKey
	if pub == "" {
		pub = res.Address
	}
	return SessionRecord{
		WalletType: res.Type,
		Timestamp:  now.UnixMilli(),
		PublicKey:  pub,
		Address:    res.Address,
	}
}

// CreatedAt returns the record timestamp as a time
func (r SessionRecord) CreatedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Expired reports whether the record is older than ttl at now.
// A record exactly ttl old is still valid.
func (r SessionRecord) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return now.UnixMilli()-r.Timestamp > ttl.Milliseconds()
}

// Result converts the record back into a connection result
func (r SessionRecord) Result() ConnectionResult {
	return ConnectionResult{
		Type:      r.WalletType,
		PublicKey: r.PublicKey,
		Address:   r.Address,
	}
}

// Validate checks the fields a resume depends on
func (r SessionRecord) Validate() error {
	if !r.WalletType.Valid() {
		return fmt.Errorf("%w: unknown wallet type %q", ErrStorageCorrupt, r.WalletType)
	}
	if r.Timestamp <= 0 {
		return fmt.Errorf("%w: missing timestamp", ErrStorageCorrupt)
	}
	if r.Address == "" && r.PublicKey == "" {
		return fmt.Errorf("%w: missing address", ErrStorageCorrupt)
	}
	return nil
}

// EncodeSessionRecord serializes a record into its storage format
func EncodeSessionRecord(r SessionRecord) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeSessionRecord parses and validates a stored record.
// Older records carrying only publicKey get it copied into address.
func DecodeSessionRecord(data []byte) (SessionRecord, error) {
	var r SessionRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return SessionRecord{}, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}
	if err := r.Validate(); err != nil {
		return SessionRecord{}, err
	}
	if r.Address == "" {
		r.Address = r.PublicKey
	}
	return r, nil
}
