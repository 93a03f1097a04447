package secrets

import (
	"time"
)

const DefaultExpiration = time.Minute * 30

// Secret is a plaintext value waiting to be encrypted and stored.
type Secret struct {
	value      string
	expiration time.Duration
	expiresAt  time.Time
}

func NewSecret(value string) *Secret {
	return &Secret{value: value, expiration: DefaultExpiration}
}

func (s *Secret) Value() string {
	return s.value
}

func (s *Secret) Expiration() time.Duration {
	return s.expiration
}

func (s *Secret) ExpiresAt() time.Time {
	return s.expiresAt
}

func (s *Secret) SetExpiration(expiration time.Duration) {
	s.expiration = expiration
}

// Seal fixes the absolute expiry relative to now. It is called once, right
// before the secret is encrypted.
func (s *Secret) Seal(now time.Time) {
	s.expiresAt = now.Add(s.expiration).UTC()
}
