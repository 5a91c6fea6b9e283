package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/squadup/internal/domain/checkout"
)

const testWebhookSecret = "whsec_test"

func sign(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

const completedPayload = `{
  "id": "evt_1",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": "cs_test_123",
      "object": "checkout.session",
      "payment_status": "paid",
      "customer_email": null,
      "customer_details": {"email": "sam@example.com"},
      "metadata": {"status": "pending_approval", "type": "pickup", "userId": "u1", "sessionId": "pk-1"}
    }
  }
}`

func TestWebhookVerifier_DecodesCompletedSession(t *testing.T) {
	t.Parallel()

	verifier := NewWebhookVerifier(testWebhookSecret, 0)
	payload := []byte(completedPayload)

	event, err := verifier.VerifyEvent(payload, sign(payload, testWebhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("verify event failed: %v", err)
	}
	if event.Type != checkout.EventSessionCompleted {
		t.Fatalf("unexpected type: %s", event.Type)
	}
	if event.SessionID != "cs_test_123" || event.ID != "evt_1" {
		t.Fatalf("unexpected ids: %+v", event)
	}
	if event.CustomerEmail != "sam@example.com" {
		t.Fatalf("expected email from customer details, got %q", event.CustomerEmail)
	}
	if event.Metadata[checkout.MetaSessionID] != "pk-1" {
		t.Fatalf("unexpected metadata: %v", event.Metadata)
	}
}

func TestWebhookVerifier_RejectsBadSignatures(t *testing.T) {
	t.Parallel()

	payload := []byte(completedPayload)
	tests := []struct {
		name      string
		secret    string
		signature string
	}{
		{name: "wrong secret", secret: testWebhookSecret, signature: sign(payload, "whsec_other", time.Now())},
		{name: "stale timestamp", secret: testWebhookSecret, signature: sign(payload, testWebhookSecret, time.Now().Add(-time.Hour))},
		{name: "missing header", secret: testWebhookSecret, signature: ""},
		{name: "unconfigured secret", secret: "", signature: sign(payload, testWebhookSecret, time.Now())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewWebhookVerifier(tc.secret, 0).VerifyEvent(payload, tc.signature)
			if !errors.Is(err, ErrInvalidSignature) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}
