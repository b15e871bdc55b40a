package paymentprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret string, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestClient_VerifySignature(t *testing.T) {
	const secret = "whsec_test"
	client := NewClient("sk_test", secret)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"client_reference_id":"uid-1"}}}`)
	timestamp := "1718000000"
	validHeader := fmt.Sprintf("t=%s,v1=%s", timestamp, signPayload(secret, timestamp, payload))

	t.Run("корректная подпись разбирает событие", func(t *testing.T) {
		event, err := client.VerifySignature(payload, validHeader)

		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, EventCheckoutCompleted, event.Type)
		assert.Equal(t, "uid-1", event.Data.Object.ClientReferenceID)
	})

	t.Run("подпись другим секретом отклоняется", func(t *testing.T) {
		header := fmt.Sprintf("t=%s,v1=%s", timestamp, signPayload("whsec_other", timestamp, payload))

		event, err := client.VerifySignature(payload, header)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("подменённое тело отклоняется", func(t *testing.T) {
		event, err := client.VerifySignature([]byte(`{"id":"evt_2"}`), validHeader)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("заголовок без подписи отклоняется", func(t *testing.T) {
		event, err := client.VerifySignature(payload, "t=1718000000")

		assert.Nil(t, event)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("пустой заголовок отклоняется", func(t *testing.T) {
		event, err := client.VerifySignature(payload, "")

		assert.Nil(t, event)
		assert.ErrorIs(t, err, ErrBadSignature)
	})
}
