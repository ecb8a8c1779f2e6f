package response

import (
	"sparkwash-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CheckoutResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
	AmountCents      int64  `json:"amountCents"`
}

type PaymentStatusResponse struct {
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	BookingID *uuid.UUID `json:"bookingId,omitempty"`
}

func FromPaymentStatusView(view *queries.PaymentStatusView) *PaymentStatusResponse {
	var resp PaymentStatusResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
