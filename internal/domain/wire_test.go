package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func payload() *SessionPayload {
	return &SessionPayload{
		Farm:            json.RawMessage(`{"id": 42}`),
		DeviceTrackerID: ptr("dt"),
		Verified:        ptr(false),
		Moderation:      json.RawMessage(`{}`),
		SessionID:       ptr("s"),
		FarmID:          ptr("42"),
		AnalyticsID:     ptr("a"),
	}
}

func TestClassifyStatus(t *testing.T) {
	assert.ErrorIs(t, ClassifyStatus(503), ErrMaintenance)
	assert.ErrorIs(t, ClassifyStatus(429), ErrTooManyRequests)
	assert.ErrorIs(t, ClassifyStatus(401), ErrSessionExpired)
	assert.ErrorIs(t, ClassifyStatus(400), ErrSessionServer)
	assert.ErrorIs(t, ClassifyStatus(500), ErrSessionServer)
	assert.NoError(t, ClassifyStatus(200))
	assert.NoError(t, ClassifyStatus(201))
	assert.NoError(t, ClassifyStatus(304))
}

func TestPayloadValidate(t *testing.T) {
	require.NoError(t, payload().Validate())

	broken := payload()
	broken.FarmID = nil
	assert.ErrorIs(t, broken.Validate(), ErrInvalidResponse)

	broken = payload()
	broken.Farm = nil
	assert.ErrorIs(t, broken.Validate(), ErrInvalidResponse)

	broken = payload()
	broken.Verified = nil
	assert.ErrorIs(t, broken.Validate(), ErrInvalidResponse)
}

func TestPayloadResultProjection(t *testing.T) {
	p := payload()
	p.FarmAddress = "0xFA"
	p.Transaction = &PendingTransaction{Type: "withdraw_bumpkin", ExpiresAt: 1234}

	res := p.Result("game")
	assert.Equal(t, "42", res.FarmID)
	assert.Equal(t, "0xFA", res.FarmAddress)
	assert.Equal(t, "game", res.Game)
	assert.False(t, res.IsBlacklisted)
	assert.NotNil(t, res.Announcements)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, "withdraw_bumpkin", res.Transaction.Type)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrMaintenance))
	assert.True(t, IsRetryable(ErrTooManyRequests))
	assert.True(t, IsRetryable(ErrTransport))
	assert.False(t, IsRetryable(ErrSessionExpired))
	assert.False(t, IsRetryable(ErrInvalidResponse))
}

func TestNewTransactionID(t *testing.T) {
	a, b := NewTransactionID(), NewTransactionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
