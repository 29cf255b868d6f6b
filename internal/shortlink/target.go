package shortlink

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
)

// MaxURLLength bounds the accepted target URL size.
const MaxURLLength = 2048

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	if len(rawURL) > MaxURLLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidURL, MaxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return nil
}

// HashURL returns the hex SHA-256 of the exact URL string.
func HashURL(rawURL string) URLHash {
	h := sha256.Sum256([]byte(rawURL))

	return URLHash(hex.EncodeToString(h[:]))
}
