package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validSubmitBody = `{
	"name": "Ahmad bin Abdullah",
	"phone": "012-345 6789",
	"pax": 2,
	"captchaToken": "token-from-widget"
}`

// =========================================================================
// SUBMIT TESTS
// =========================================================================

func TestHandleSubmit_Success(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/rsvp", validSubmitBody, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "RSVP submitted successfully")
}

func TestHandleSubmit_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/rsvp",
		`{"name":"","phone":"","pax":1,"captchaToken":""}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "phone")
	assert.Contains(t, body.Errors, "captchaToken")
}

func TestHandleSubmit_CaptchaRejected(t *testing.T) {
	env := newTestEnvWith(t, false, false)

	rec := env.do(http.MethodPost, "/api/rsvp", validSubmitBody, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Captcha verification failed")

	// A rejected captcha must not leave a row behind.
	list := env.do(http.MethodGet, "/api/rsvp", "", nil)
	assert.Contains(t, list.Body.String(), `"total_responses":0`)
}

func TestHandleSubmit_DuplicatePhone(t *testing.T) {
	env := newTestEnv(t)

	first := env.do(http.MethodPost, "/api/rsvp", validSubmitBody, nil)
	assert.Equal(t, http.StatusOK, first.Code)

	// Same number in a different format still collides after normalization.
	second := env.do(http.MethodPost, "/api/rsvp", `{
		"name": "Siti binti Ahmad",
		"phone": "+60 12 345 6789",
		"pax": 3,
		"captchaToken": "token-from-widget"
	}`, nil)

	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "already been used")
}

func TestHandleSubmit_BadJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/rsvp", `{"name": `, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestHandleList_Public(t *testing.T) {
	env := newTestEnv(t)

	for i, phone := range []string{"012-111 1111", "012-222 2222"} {
		body := fmt.Sprintf(`{"name":"Guest %d","phone":"%s","pax":%d,"captchaToken":"tok"}`,
			i+1, phone, i+2)
		rec := env.do(http.MethodPost, "/api/rsvp", body, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(http.MethodGet, "/api/rsvp", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Responses []struct {
				Name  string `json:"name"`
				Phone string `json:"phone"`
			} `json:"responses"`
			Stats struct {
				TotalResponses int `json:"total_responses"`
				TotalGuests    int `json:"total_guests"`
			} `json:"stats"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Responses, 2)
	assert.Equal(t, 2, body.Data.Stats.TotalResponses)
	assert.Equal(t, 5, body.Data.Stats.TotalGuests)
	// Phones come back normalized to international format.
	phones := []string{body.Data.Responses[0].Phone, body.Data.Responses[1].Phone}
	assert.Contains(t, phones, "+60121111111")
	assert.Contains(t, phones, "+60122222222")
}

func TestHandleList_AdminRouteRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/admin/rsvp", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleList_AdminRouteWithSession(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "hafiz", "secret123")
	cookie := env.loginCookie(t, "hafiz", "secret123")

	rec := env.do(http.MethodGet, "/api/admin/rsvp", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stats"`)
}
