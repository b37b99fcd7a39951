// Package sanitize cleans untrusted form input before it reaches the
// business logic or the database.
//
// DEFENSE IN DEPTH:
// Every query in this app is parameterized, so SQL injection should already
// be impossible — and React-style frontends escape output, so stored XSS
// should be too. This package is the second layer: even if some future code
// path interpolates a stored value into SQL or HTML, the value was already
// defanged on the way in.
//
// THE PIPELINE (in order):
//  1. Trim surrounding whitespace (optional)
//  2. Truncate to the maximum length
//  3. Scan for suspicious keywords — recorded for audit logging only
//  4. Replace dangerous patterns (SQL keywords, tautologies, script tags,
//     event handlers, shell metacharacters, path traversal) with [BLOCKED]
//     when running strict
//  5. HTML-entity-encode the XSS-relevant characters unless AllowHTML
//  6. Strip any remaining control and null characters
//
// Sanitization never fails: the caller always gets a best-effort cleaned
// string plus metadata describing what was found, and decides upstream
// whether to reject the request outright.
package sanitize

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limits applied by the specialized helpers.
const (
	DefaultMaxLength = 1000
	MaxTextLength    = 255
	MaxPhoneLength   = 20
	MaxEmailLength   = 254 // RFC 5321 limit
	MaxUsernameLength = 50
	MaxURLLength     = 2048

	// blockedToken replaces dangerous substrings in strict mode.
	blockedToken = "[BLOCKED]"

	// auditSnippetLength caps how much of the original input is ever
	// written to the security log. Never the full payload.
	auditSnippetLength = 100
)

// dangerousPatterns are replaced with [BLOCKED] in strict mode.
// Matched case-insensitively where the attack is case-insensitive.
var dangerousPatterns = []*regexp.Regexp{
	// SQL keywords
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|UNION|SCRIPT)\b`),
	// OR 1=1 style tautologies
	regexp.MustCompile(`(?i)\b(OR|AND)\s+\d+\s*=\s*\d+`),
	// Quote-based boolean injection and stacked statements
	regexp.MustCompile(`(?i)'(\s*OR\s*'.*'|;\s*DROP\s+TABLE|;\s*DELETE\s+FROM|;\s*INSERT\s+INTO)`),
	// Script-capable URI schemes
	regexp.MustCompile(`(?i)(javascript:|data:text/html|data:application|vbscript:)`),
	// Inline script blocks
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	// HTML event-handler attributes (onclick=, onload=, ...)
	regexp.MustCompile(`(?i)on\w+\s*=`),
	// Shell metacharacters
	regexp.MustCompile("[|&;\\\\`]|\\$\\("),
	// Path traversal
	regexp.MustCompile(`\.\./|\.\.\\`),
	// Control characters (tab, CR, LF are allowed)
	regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`),
}

// suspiciousKeywords are only recorded, never removed — a guest legitimately
// named "Adminah" should not have her name mangled, but the hit is worth an
// audit log line.
var suspiciousKeywords = []string{
	"script", "javascript", "vbscript", "onload", "onerror", "onclick",
	"select", "union", "drop", "delete", "insert", "update", "exec",
	"admin", "root", "password", "auth", "token", "session",
}

// htmlEscaper encodes the eight characters that matter for XSS. A single
// strings.Replacer pass means the inserted entities are never re-scanned
// (no double encoding of the & in &lt;).
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	"`", "&#x60;",
	"=", "&#x3D;",
)

// controlChars strips what step 6 removes after encoding.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

// Character allowlists applied by the specialized helpers before the
// general pipeline runs.
var (
	phoneCharset    = regexp.MustCompile(`[^\d+\-\s()]`)
	emailCharset    = regexp.MustCompile(`[^a-zA-Z0-9@._\-]`)
	usernameCharset = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
)

// Options controls a single sanitization pass.
type Options struct {
	AllowHTML      bool // skip HTML-entity encoding
	MaxLength      int  // truncation limit; 0 means DefaultMaxLength
	TrimWhitespace bool
	Strict         bool // replace dangerous matches with [BLOCKED]
}

// DefaultOptions is the configuration used for free-text fields:
// no HTML, 1000 chars, trimmed, strict.
func DefaultOptions() Options {
	return Options{
		AllowHTML:      false,
		MaxLength:      DefaultMaxLength,
		TrimWhitespace: true,
		Strict:         true,
	}
}

// Result carries the cleaned string plus everything the caller might want
// to log or act on.
type Result struct {
	Sanitized          string
	WasSanitized       bool     // the output differs from the input
	BlockedPatterns    []string // the dangerous substrings that matched
	SuspiciousKeywords []string // keyword hits, recorded but not removed
}

// Suspicious reports whether the pass found anything worth auditing.
func (r Result) Suspicious() bool {
	return len(r.BlockedPatterns) > 0 || len(r.SuspiciousKeywords) > 0
}

// Sanitizer runs the cleaning pipeline and writes audit log entries for
// suspicious input. It is safe for concurrent use.
type Sanitizer struct {
	logger *slog.Logger
}

// New creates a Sanitizer that audits suspicious input through logger.
func New(logger *slog.Logger) *Sanitizer {
	return &Sanitizer{logger: logger}
}

// Input runs the full pipeline over raw with the given options.
func (s *Sanitizer) Input(raw string, opts Options) Result {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}

	out := raw
	res := Result{}

	// Step 1: trim
	if opts.TrimWhitespace {
		trimmed := strings.TrimSpace(out)
		if trimmed != out {
			out = trimmed
			res.WasSanitized = true
		}
	}

	// Step 2: truncate, backing off to a rune boundary so a multibyte
	// character is dropped whole rather than split into invalid UTF-8
	if len(out) > opts.MaxLength {
		cut := opts.MaxLength
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
		res.WasSanitized = true
	}

	// Step 3: suspicious keywords (log only)
	lower := strings.ToLower(out)
	for _, kw := range suspiciousKeywords {
		if strings.Contains(lower, kw) {
			res.SuspiciousKeywords = append(res.SuspiciousKeywords, kw)
		}
	}

	// Step 4: dangerous patterns
	for _, pat := range dangerousPatterns {
		matches := pat.FindAllString(out, -1)
		if len(matches) == 0 {
			continue
		}
		res.BlockedPatterns = append(res.BlockedPatterns, matches...)
		if opts.Strict {
			out = pat.ReplaceAllString(out, blockedToken)
			res.WasSanitized = true
		}
	}

	// Step 5: HTML-entity encoding
	if !opts.AllowHTML {
		escaped := htmlEscaper.Replace(out)
		if escaped != out {
			out = escaped
			res.WasSanitized = true
		}
	}

	// Step 6: strip remaining control characters
	cleaned := controlChars.ReplaceAllString(out, "")
	if cleaned != out {
		out = cleaned
		res.WasSanitized = true
	}

	res.Sanitized = out

	if res.Suspicious() {
		s.audit("suspicious input detected", raw, res)
	}

	return res
}

// Text sanitizes a free-text field (names, addresses, notes).
// maxLen <= 0 falls back to MaxTextLength.
func (s *Sanitizer) Text(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = MaxTextLength
	}
	opts := DefaultOptions()
	opts.MaxLength = maxLen
	return s.Input(raw, opts).Sanitized
}

// Phone keeps only digits, +, -, spaces and parentheses, then runs the
// general pipeline with the phone length cap.
func (s *Sanitizer) Phone(raw string) string {
	cleaned := phoneCharset.ReplaceAllString(raw, "")
	opts := DefaultOptions()
	opts.MaxLength = MaxPhoneLength
	return s.Input(cleaned, opts).Sanitized
}

// Email applies a basic RFC-ish character allowlist before the pipeline.
// It does not prove deliverability — only that the value is shaped like an
// address and is free of injection payloads.
func (s *Sanitizer) Email(raw string) string {
	cleaned := emailCharset.ReplaceAllString(raw, "")
	opts := DefaultOptions()
	opts.MaxLength = MaxEmailLength
	return s.Input(cleaned, opts).Sanitized
}

// Username keeps only alphanumerics, underscore and hyphen, capped at 50.
func (s *Sanitizer) Username(raw string) string {
	cleaned := usernameCharset.ReplaceAllString(raw, "")
	opts := DefaultOptions()
	opts.MaxLength = MaxUsernameLength
	return s.Input(cleaned, opts).Sanitized
}

// URL sanitizes and validates a URL, returning "" unless the result parses
// as an absolute http or https URL with a host.
//
// AllowHTML is set for this one field type: entity-encoding would turn every
// "/" into &#x2F; and destroy the URL. Pattern blocking still applies, so
// javascript: and friends never survive, and the parse step below rejects
// anything that isn't plain http(s).
func (s *Sanitizer) URL(raw string) string {
	opts := DefaultOptions()
	opts.AllowHTML = true
	opts.MaxLength = MaxURLLength
	cleaned := s.Input(raw, opts).Sanitized

	u, err := url.Parse(cleaned)
	if err != nil {
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return cleaned
}

// FormValue dispatches a form field to the right specialized helper based
// on its key. Unrecognized keys get the general free-text treatment.
func (s *Sanitizer) FormValue(key, value string) string {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "phone"):
		return s.Phone(value)
	case strings.Contains(k, "email"):
		return s.Email(value)
	case strings.Contains(k, "username"):
		return s.Username(value)
	case strings.Contains(k, "url"):
		return s.URL(value)
	default:
		return s.Text(value, MaxTextLength)
	}
}

// ClampInt bounds n to [lo, hi]. Numeric form fields are clamped rather
// than rejected; schema validation upstream still re-checks the range.
func ClampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// audit writes a security log entry. Only a truncated snippet of the
// original input is recorded — never the full payload.
func (s *Sanitizer) audit(msg, original string, res Result) {
	snippet := original
	if len(snippet) > auditSnippetLength {
		snippet = fmt.Sprintf("%s...", snippet[:auditSnippetLength])
	}
	s.logger.Warn(msg,
		slog.String("input", snippet),
		slog.Any("blockedPatterns", res.BlockedPatterns),
		slog.Any("suspiciousKeywords", res.SuspiciousKeywords),
	)
}
