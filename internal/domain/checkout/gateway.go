package checkout

import "context"

// Gateway creates hosted checkout sessions at the payment provider.
type Gateway interface {
	CreateSession(ctx context.Context, params SessionParams) (Session, error)
}

const EventSessionCompleted = "checkout.session.completed"

// Session payment statuses reported on completion. Delayed methods complete
// as unpaid and settle later.
const (
	PaymentStatusPaid              = "paid"
	PaymentStatusUnpaid            = "unpaid"
	PaymentStatusNoPaymentRequired = "no_payment_required"
)

// Event is a verified payment provider notification.
type Event struct {
	ID            string
	Type          string
	SessionID     string
	PaymentStatus string
	CustomerEmail string
	Metadata      map[string]string
}

// Settled reports whether the buyer's payment has been collected.
func (e Event) Settled() bool {
	return e.PaymentStatus == PaymentStatusPaid || e.PaymentStatus == PaymentStatusNoPaymentRequired
}

// EventVerifier authenticates and decodes a raw webhook payload.
type EventVerifier interface {
	VerifyEvent(payload []byte, signature string) (Event, error)
}
