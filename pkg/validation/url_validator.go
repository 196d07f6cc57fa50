package validation

import (
	"net/url"
	"strings"

	apperrors "land-sentinel/internal/errors"
)

// URLValidator gates imagery URLs accepted for remote ingestion.
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator allows http and https from any host.
func NewURLValidator() *URLValidator {
	return &URLValidator{allowedSchemes: []string{"http", "https"}}
}

// NewURLValidatorWithOptions restricts schemes and hosts explicitly. An empty
// host list allows all hosts.
func NewURLValidatorWithOptions(schemes, hosts []string) *URLValidator {
	return &URLValidator{allowedSchemes: schemes, allowedHosts: hosts}
}

// ValidateImageURL rejects URLs that cannot safely be fetched.
func (v *URLValidator) ValidateImageURL(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return apperrors.NewValidationError("URL cannot be empty", nil)
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return apperrors.NewValidationError("invalid URL format", err)
	}
	if !contains(v.allowedSchemes, parsed.Scheme) {
		return apperrors.NewValidationError("URL scheme not allowed", nil)
	}
	if parsed.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}
	if len(v.allowedHosts) > 0 && !contains(v.allowedHosts, parsed.Host) {
		return apperrors.NewValidationError("URL host not allowed", nil)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
