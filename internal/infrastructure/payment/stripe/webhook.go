package stripe

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/squadup/internal/domain/checkout"
	"github.com/stripe/stripe-go/v74/webhook"
)

// ErrInvalidSignature is returned when a payload does not carry a valid
// signature for the configured secret.
var ErrInvalidSignature = crerr.New("invalid webhook signature")

// WebhookVerifier checks the Stripe-Signature header and decodes the event.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewWebhookVerifier(secret string, tolerance time.Duration) *WebhookVerifier {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &WebhookVerifier{secret: strings.TrimSpace(secret), tolerance: tolerance}
}

func (v *WebhookVerifier) VerifyEvent(payload []byte, signature string) (checkout.Event, error) {
	if v.secret == "" {
		return checkout.Event{}, crerr.Mark(crerr.New("webhook secret is not configured"), ErrInvalidSignature)
	}
	if err := webhook.ValidatePayloadWithTolerance(payload, signature, v.secret, v.tolerance); err != nil {
		return checkout.Event{}, crerr.Mark(crerr.Wrap(err, "validate webhook payload"), ErrInvalidSignature)
	}

	var raw webhookEvent
	if err := sonic.Unmarshal(payload, &raw); err != nil {
		return checkout.Event{}, crerr.Wrap(err, "decode webhook event")
	}

	obj := raw.Data.Object
	email := strings.TrimSpace(obj.CustomerEmail)
	if email == "" && obj.CustomerDetails != nil {
		email = strings.TrimSpace(obj.CustomerDetails.Email)
	}

	return checkout.Event{
		ID:            raw.ID,
		Type:          raw.Type,
		SessionID:     obj.ID,
		PaymentStatus: obj.PaymentStatus,
		CustomerEmail: email,
		Metadata:      obj.Metadata,
	}, nil
}

type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID              string            `json:"id"`
			PaymentStatus   string            `json:"payment_status"`
			CustomerEmail   string            `json:"customer_email"`
			CustomerDetails *struct {
				Email string `json:"email"`
			} `json:"customer_details"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}
