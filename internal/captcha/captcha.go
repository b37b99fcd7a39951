// Package captcha verifies hCaptcha tokens against the hCaptcha service.
//
// FAIL CLOSED:
// The verifier is the last gate before an anonymous form submission reaches
// the database, so every ambiguous outcome — network error, timeout, non-2xx
// response, unparseable body — counts as "not verified". A captcha outage
// pauses RSVP submissions; it never waves them through.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// verifyURL is hCaptcha's server-side verification endpoint.
const verifyURL = "https://hcaptcha.com/siteverify"

// requestTimeout bounds the verification call. A hung captcha service must
// not hold request handlers open indefinitely.
const requestTimeout = 10 * time.Second

// Verifier checks a client-supplied captcha token.
// The RSVP service depends on this interface; tests substitute a stub.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// HCaptcha verifies tokens by POSTing them, together with the server-held
// secret key, to the hCaptcha siteverify endpoint.
type HCaptcha struct {
	secret   string
	endpoint string // verifyURL in production; overridden in tests
	client   *http.Client
}

// NewHCaptcha creates a verifier with the given secret key (the
// HCAPTCHA_SECRET env var — never the public site key).
func NewHCaptcha(secret string) *HCaptcha {
	return &HCaptcha{
		secret:   secret,
		endpoint: verifyURL,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// verifyResponse is the part of hCaptcha's JSON reply we care about.
type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify reports whether token passes hCaptcha verification.
//
// The bool is the verdict; the error carries diagnostic detail for logging.
// Callers must treat (false, err) and (false, nil) identically — both mean
// the submission is rejected.
func (h *HCaptcha) Verify(ctx context.Context, token string) (bool, error) {
	if h.secret == "" {
		// Misconfiguration, not a user error. Still a rejection.
		return false, fmt.Errorf("captcha: secret key is not configured")
	}

	form := url.Values{}
	form.Set("secret", h.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha: building verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha: calling siteverify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha: siteverify returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("captcha: decoding siteverify response: %w", err)
	}

	if !result.Success {
		return false, fmt.Errorf("captcha: verification rejected: %v", result.ErrorCodes)
	}

	return true, nil
}
