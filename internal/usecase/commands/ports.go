package commands

import "context"

// CheckoutSession is the gateway handoff returned by Initialize: the hosted
// payment page URL and the opaque reference everything downstream keys on.
type CheckoutSession struct {
	AuthorizationURL string
	Reference        string
}

type GatewayStatus string

const (
	GatewayPending GatewayStatus = "pending"
	GatewaySuccess GatewayStatus = "success"
	GatewayFailed  GatewayStatus = "failed"
)

// PaymentGateway is the outbound port to the hosted checkout provider.
// Verify is an idempotent read and may be retried; Initialize is not retried
// because a duplicate call would issue a second charge reference.
type PaymentGateway interface {
	Initialize(ctx context.Context, amountCents int64, email string) (*CheckoutSession, error)
	Verify(ctx context.Context, reference string) (GatewayStatus, error)
}
