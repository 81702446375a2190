package auth

import "time"

// TestIssuer is the issuer of tokens from NewTestJWTService.
const TestIssuer = "tasks-api-test"

// NewTestJWTService creates a service with a fixed clock for handler and
// middleware tests in other packages. A nil now uses time.Now.
func NewTestJWTService(secret string, lifetime time.Duration, now func() time.Time) JWTService {
	if now == nil {
		now = time.Now
	}
	return &hs256Service{
		key:      []byte(secret),
		issuer:   TestIssuer,
		lifetime: lifetime,
		leeway:   defaultLeeway,
		now:      now,
	}
}
