// Package paymentprovider реализует клиент платёжного провайдера:
// создание checkout-сессий и проверку подписи вебхуков.
package paymentprovider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrBadSignature возвращается при неверной подписи вебхука.
var ErrBadSignature = errors.New("webhook signature mismatch")

const defaultAPIURL = "https://api.stripe.com/v1"

// Client — HTTP-клиент платёжного провайдера.
type Client struct {
	secretKey     string
	webhookSecret string
	apiURL        string
	httpClient    *http.Client
}

// NewClient создаёт новый клиент провайдера.
func NewClient(secretKey, webhookSecret string) *Client {
	return &Client{
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
		apiURL:        defaultAPIURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCheckoutSession создаёт платёжную сессию подписки.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	const op = "paymentprovider.CreateCheckoutSession"

	form := url.Values{}
	form.Set("mode", req.Mode)
	form.Set("line_items[0][price]", req.PriceID)
	form.Set("line_items[0][quantity]", strconv.Itoa(req.Quantity))
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("client_reference_id", req.ClientReferenceID)
	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: provider returned %d: %s", op, resp.StatusCode, body)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}

// VerifySignature проверяет подпись вебхука и разбирает событие.
// Заголовок имеет вид "t=<unix>,v1=<hex hmac sha256>".
func (c *Client) VerifySignature(payload []byte, header string) (*WebhookEvent, error) {
	const op = "paymentprovider.VerifySignature"

	var timestamp, signature string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signature = kv[1]
		}
	}
	if timestamp == "" || signature == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrBadSignature)
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, fmt.Errorf("%s: %w", op, ErrBadSignature)
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &event, nil
}
