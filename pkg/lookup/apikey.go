package lookup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrOpaqueKey = errors.New("api key is not a JWT")

type KeyInfo struct {
	Role      string
	Issuer    string
	ExpiresAt time.Time
	Expired   bool
}

// InspectAPIKey decodes the key's claims without verifying its signature.
// Supabase anon and service keys are JWTs; newer publishable keys are not
// and yield ErrOpaqueKey.
func InspectAPIKey(key string, now time.Time) (KeyInfo, error) {
	tok, err := jwt.ParseInsecure([]byte(strings.TrimSpace(key)))
	if err != nil {
		return KeyInfo{}, fmt.Errorf("%w: %w", ErrOpaqueKey, err)
	}

	info := KeyInfo{
		Issuer:    tok.Issuer(),
		ExpiresAt: tok.Expiration(),
	}

	if role, ok := tok.Get("role"); ok {
		if s, ok := role.(string); ok {
			info.Role = s
		}
	}

	info.Expired = !info.ExpiresAt.IsZero() && !now.Before(info.ExpiresAt)

	return info, nil
}
