package catalogue

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProxyAddress is returned when the proxy is not a
	// socks5://host:port URL or a bare host:port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected [socks5://][user:pass@]host:port")

	// ErrBodyTooLarge is returned when the catalogue exceeds the configured
	// maximum download size.
	ErrBodyTooLarge = errors.New("catalogue exceeds maximum body size")

	// ErrMalformedCatalogue is returned when the document is not valid XML
	// or not valid gzip.
	ErrMalformedCatalogue = errors.New("malformed catalogue")

	// ErrInvalidValue is returned when a numeric element holds text that is
	// not a number.
	ErrInvalidValue = errors.New("invalid numeric value")
)

// StatusError is returned when the catalogue server answers with a
// non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %s", e.URL, e.Status)
}
