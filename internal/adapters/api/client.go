package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/larriantoniy/farm_session_client/internal/config"
	"github.com/larriantoniy/farm_session_client/internal/domain"
	"github.com/larriantoniy/farm_session_client/internal/ports"
)

const contentTypeJSON = "application/json;charset=UTF-8"

// Client ходит на серверный эндпоинт /session
type Client struct {
	client        *http.Client
	logger        *slog.Logger
	baseURL       string
	clientVersion string
}

func NewClient(cfg *config.AppConfig, logger *slog.Logger) *Client {
	return &Client{
		client:        &http.Client{Timeout: cfg.RequestTimeout},
		logger:        logger,
		baseURL:       cfg.APIURL,
		clientVersion: cfg.ClientVersion,
	}
}

// sessionBody — тело POST /session. Пустые контекстные поля не передаем.
type sessionBody struct {
	ClientVersion string `json:"clientVersion"`
	Wallet        string `json:"wallet"`
	PromoCode     string `json:"promoCode,omitempty"`
	ReferrerID    string `json:"referrerId,omitempty"`
	SignUpMethod  string `json:"signUpMethod,omitempty"`
}

// CreateSession выполняет одно рукопожатие. Статус классифицируется до
// разбора тела: не-2xx ответы не обязаны соответствовать форме успешного
// и до декодера не доходят. Повторов внутри нет.
func (c *Client) CreateSession(ctx context.Context, req domain.SessionRequest, sctx ports.SessionContext) (*domain.SessionPayload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := sessionBody{
		ClientVersion: c.clientVersion,
		Wallet:        req.Wallet,
		PromoCode:     sctx.PromoCode,
		ReferrerID:    sctx.ReferrerID,
		SignUpMethod:  sctx.SignUpMethod,
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/session", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Transaction-ID", req.TransactionID)

	c.logger.Debug("session request", "url", httpReq.URL.String(), "transaction_id", req.TransactionID)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		// отмену вызывающего отдаем как есть, чтобы работал errors.Is
		if ctx.Err() != nil {
			return nil, fmt.Errorf("session request canceled: %w", ctx.Err())
		}
		c.logger.Error("session request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := domain.ClassifyStatus(resp.StatusCode); err != nil {
		// тело не парсим, только дочитываем соединение
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("session rejected", "status", resp.StatusCode, "transaction_id", req.TransactionID)
		return nil, fmt.Errorf("%w (status %d)", err, resp.StatusCode)
	}

	var payload domain.SessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrInvalidResponse, err)
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	return &payload, nil
}
