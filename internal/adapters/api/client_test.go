package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larriantoniy/farm_session_client/internal/config"
	"github.com/larriantoniy/farm_session_client/internal/domain"
	"github.com/larriantoniy/farm_session_client/internal/ports"
)

const validBody = `{
	"farm": {"id": 42, "balance": "10"},
	"startedAt": "2024-01-01T00:00:00Z",
	"isBlacklisted": false,
	"deviceTrackerId": "dt-1",
	"announcements": [{"id": "a1"}],
	"verified": true,
	"moderation": {"muted": []},
	"promoCode": "SPRING",
	"sessionId": "sess-1",
	"farmId": "42",
	"analyticsId": "an-1",
	"farmAddress": "0xFA"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.AppConfig{
		APIURL:         srv.URL,
		ClientVersion:  "0.1.0-test",
		RequestTimeout: 5 * time.Second,
	}
	return NewClient(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func testRequest() domain.SessionRequest {
	return domain.SessionRequest{Token: "abc", TransactionID: "tx-1", Wallet: "0xAA"}
}

func TestCreateSessionSendsHeadersAndBody(t *testing.T) {
	var gotHeaders http.Header
	var gotBody []byte

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(validBody))
	})

	sctx := ports.SessionContext{PromoCode: "SPRING", ReferrerID: "ref-9", SignUpMethod: "google"}
	_, err := client.CreateSession(context.Background(), testRequest(), sctx)
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", gotHeaders.Get("Authorization"))
	assert.Equal(t, "tx-1", gotHeaders.Get("X-Transaction-ID"))
	assert.Equal(t, "application/json;charset=UTF-8", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))

	assert.JSONEq(t, `{
		"clientVersion": "0.1.0-test",
		"wallet": "0xAA",
		"promoCode": "SPRING",
		"referrerId": "ref-9",
		"signUpMethod": "google"
	}`, string(gotBody))
}

func TestCreateSessionOmitsEmptyContext(t *testing.T) {
	var gotBody []byte

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(validBody))
	})

	_, err := client.CreateSession(context.Background(), testRequest(), ports.SessionContext{})
	require.NoError(t, err)

	assert.NotContains(t, string(gotBody), "promoCode")
	assert.NotContains(t, string(gotBody), "referrerId")
	assert.NotContains(t, string(gotBody), "signUpMethod")
}

func TestCreateSessionStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{503, domain.ErrMaintenance},
		{429, domain.ErrTooManyRequests},
		{401, domain.ErrSessionExpired},
		{500, domain.ErrSessionServer},
		{418, domain.ErrSessionServer},
	}

	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			// тело не соответствует форме успешного ответа и
			// не должно попасть в декодер
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := client.CreateSession(context.Background(), testRequest(), ports.SessionContext{})
		require.Error(t, err, "status %d", tc.status)
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		assert.NotErrorIs(t, err, domain.ErrInvalidResponse, "status %d", tc.status)
	}
}

func TestCreateSessionInvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{truncated"))
	})

	_, err := client.CreateSession(context.Background(), testRequest(), ports.SessionContext{})
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestCreateSessionMissingRequiredField(t *testing.T) {
	bodies := map[string]string{
		"farmId":    `{"farm": {}, "deviceTrackerId": "dt", "verified": true, "moderation": {}, "sessionId": "s", "analyticsId": "a"}`,
		"sessionId": `{"farm": {}, "deviceTrackerId": "dt", "verified": true, "moderation": {}, "farmId": "42", "analyticsId": "a"}`,
		"verified":  `{"farm": {}, "deviceTrackerId": "dt", "moderation": {}, "sessionId": "s", "farmId": "42", "analyticsId": "a"}`,
		"farm":      `{"deviceTrackerId": "dt", "verified": true, "moderation": {}, "sessionId": "s", "farmId": "42", "analyticsId": "a"}`,
	}

	for field, body := range bodies {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		_, err := client.CreateSession(context.Background(), testRequest(), ports.SessionContext{})
		assert.ErrorIs(t, err, domain.ErrInvalidResponse, "missing %s", field)
	}
}

func TestCreateSessionSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validBody))
	})

	payload, err := client.CreateSession(context.Background(), testRequest(), ports.SessionContext{})
	require.NoError(t, err)

	assert.Equal(t, "42", *payload.FarmID)
	assert.Equal(t, "sess-1", *payload.SessionID)
	assert.Equal(t, "an-1", *payload.AnalyticsID)
	assert.Equal(t, "dt-1", *payload.DeviceTrackerID)
	assert.Equal(t, "0xFA", payload.FarmAddress)
	assert.Equal(t, "SPRING", payload.PromoCode)
	assert.True(t, *payload.Verified)
	assert.Len(t, payload.Announcements, 1)
	assert.JSONEq(t, `{"id": 42, "balance": "10"}`, string(payload.Farm))
}

func TestCreateSessionTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := &config.AppConfig{APIURL: srv.URL, ClientVersion: "v", RequestTimeout: time.Second}
	client := NewClient(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv.Close() // сервер уже мертв, статуса не будет

	_, err := client.CreateSession(context.Background(), testRequest(), ports.SessionContext{})
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestCreateSessionCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validBody))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateSession(ctx, testRequest(), ports.SessionContext{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotErrorIs(t, err, domain.ErrTransport)
}

func TestCreateSessionRejectsIncompleteRequest(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.CreateSession(context.Background(), domain.SessionRequest{TransactionID: "tx", Wallet: "0x"}, ports.SessionContext{})
	require.Error(t, err)
	assert.Zero(t, calls)
}
