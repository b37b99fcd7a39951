package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestVerifier points an HCaptcha at a fake siteverify endpoint.
func newTestVerifier(t *testing.T, handler http.HandlerFunc) *HCaptcha {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	h := NewHCaptcha("test-secret-key")
	h.endpoint = srv.URL
	return h
}

func TestVerify_Success(t *testing.T) {
	h := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		// The secret and token must arrive as form fields.
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if got := r.PostForm.Get("secret"); got != "test-secret-key" {
			t.Errorf("secret = %q", got)
		}
		if got := r.PostForm.Get("response"); got != "the-token" {
			t.Errorf("response = %q", got)
		}
		w.Write([]byte(`{"success": true}`))
	})

	ok, err := h.Verify(context.Background(), "the-token")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("Verify() = false for a successful response")
	}
}

func TestVerify_Rejected(t *testing.T) {
	h := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	})

	ok, err := h.Verify(context.Background(), "bad-token")
	if ok {
		t.Error("Verify() = true for a rejected token")
	}
	if err == nil {
		t.Error("Verify() should return the diagnostic error for logging")
	}
}

// Every ambiguous outcome must come back as (false, err) — fail closed.

func TestVerify_FailsClosedOnServerError(t *testing.T) {
	h := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if ok, err := h.Verify(context.Background(), "tok"); ok || err == nil {
		t.Errorf("Verify() = (%v, %v), want (false, non-nil)", ok, err)
	}
}

func TestVerify_FailsClosedOnGarbageBody(t *testing.T) {
	h := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	if ok, err := h.Verify(context.Background(), "tok"); ok || err == nil {
		t.Errorf("Verify() = (%v, %v), want (false, non-nil)", ok, err)
	}
}

func TestVerify_FailsClosedOnUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h := NewHCaptcha("test-secret-key")
	h.endpoint = srv.URL
	srv.Close() // nothing is listening anymore

	if ok, err := h.Verify(context.Background(), "tok"); ok || err == nil {
		t.Errorf("Verify() = (%v, %v), want (false, non-nil)", ok, err)
	}
}

func TestVerify_FailsClosedOnMissingSecret(t *testing.T) {
	h := NewHCaptcha("")

	if ok, err := h.Verify(context.Background(), "tok"); ok || err == nil {
		t.Errorf("Verify() = (%v, %v), want (false, non-nil)", ok, err)
	}
}
