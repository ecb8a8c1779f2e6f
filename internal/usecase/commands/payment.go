package commands

import (
	"context"
	"log/slog"

	"sparkwash-api/internal/domain/payment"
	reqdto "sparkwash-api/internal/handler/dto/request"
	"sparkwash-api/internal/infra"
	"sparkwash-api/internal/pkg/clock"
	"sparkwash-api/internal/pkg/errs"
	"sparkwash-api/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrIntentNotFound           = errs.New("payment intent not found")
	ErrPaymentPending           = errs.New("payment not confirmed yet")
	ErrPaymentFailed            = errs.New("payment failed")
	ErrConfirmInProgress        = errs.New("confirmation already in progress")
	ErrCommitAfterPaymentFailed = errs.New("payment confirmed but booking commit failed")
	ErrNotIntentOwner           = errs.New("payment intent belongs to another user")
	ErrGatewayUnavailable       = errs.New("payment gateway unavailable")
)

type StartCheckoutResult struct {
	AuthorizationURL string
	Reference        string
	AmountCents      int64
}

type ConfirmResult struct {
	BookingID  uuid.UUID
	IsReplayed bool
}

// PaymentCommands is the reconciler bridging one gateway checkout to at most
// one booking commit. Confirm is the idempotence boundary of the whole
// system: the awaiting-to-confirmed transition is a conditional update
// claiming the reference, and only the claimant commits.
type PaymentCommands interface {
	StartCheckout(ctx context.Context, req reqdto.StartCheckoutRequest, userID uuid.UUID) (*StartCheckoutResult, error)
	Confirm(ctx context.Context, reference string) (*ConfirmResult, error)
	Cancel(ctx context.Context, reference string, userID uuid.UUID) error
	Fail(ctx context.Context, reference string, reason string) error
	Expire(ctx context.Context, reference string) error
}

type paymentUseCaseImpl struct {
	uow          shared.UnitOfWork
	gateway      PaymentGateway
	reservations ReservationCommands
	clock        clock.Clock
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	reservations ReservationCommands,
	clock clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:          uow,
		gateway:      gateway,
		reservations: reservations,
		clock:        clock,
	}
}

// StartCheckout re-validates the slot, initializes the hosted checkout and
// persists the intent with the draft captured verbatim, so a later
// confirmation is self-contained.
func (p *paymentUseCaseImpl) StartCheckout(
	ctx context.Context,
	req reqdto.StartCheckoutRequest,
	userID uuid.UUID,
) (*StartCheckoutResult, error) {
	reserved, err := p.reservations.Reserve(ctx, req.Reserve(), userID)
	if err != nil {
		return nil, err
	}

	session, err := p.gateway.Initialize(ctx, reserved.PriceCents, req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	now := p.clock.Now()
	intent, err := payment.NewIntent(session.Reference, reserved.PriceCents, req.Email, reserved.Draft, now)
	if err != nil {
		return nil, err
	}
	if err := intent.MarkAwaiting(now); err != nil {
		return nil, err
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.PaymentIntents().Create(ctx, tx.DB(), intent)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &StartCheckoutResult{
		AuthorizationURL: session.AuthorizationURL,
		Reference:        session.Reference,
		AmountCents:      reserved.PriceCents,
	}, nil
}

// Confirm verifies the reference with the gateway and, on success, runs the
// claim-and-commit transaction. Safe to call any number of times from any
// caller; duplicates replay the recorded result.
func (p *paymentUseCaseImpl) Confirm(ctx context.Context, reference string) (*ConfirmResult, error) {
	// Reject unknown references before the gateway round trip; the gateway
	// answers a verify for a reference it never issued with a client error.
	if err := p.ensureIntentExists(ctx, reference); err != nil {
		return nil, err
	}

	status, err := p.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	switch status {
	case GatewaySuccess:
		return p.reconcile(ctx, reference)
	case GatewayFailed:
		if failErr := p.Fail(ctx, reference, "gateway reported failure"); failErr != nil {
			return nil, failErr
		}
		return nil, ErrPaymentFailed
	default:
		return nil, ErrPaymentPending
	}
}

func (p *paymentUseCaseImpl) ensureIntentExists(ctx context.Context, reference string) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.PaymentIntents().FindByReference(ctx, tx.DB(), reference); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrIntentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// reconcile runs the claiming transaction. Outcomes that must persist their
// writes while still surfacing an error (needs-review escalations) are
// carried out of the closure instead of returned from it, because a returned
// error would roll the claim back.
func (p *paymentUseCaseImpl) reconcile(ctx context.Context, reference string) (*ConfirmResult, error) {
	var (
		result     *ConfirmResult
		outcomeErr error
	)

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, outcomeErr = nil, nil
		now := p.clock.Now()

		claimed, err := tx.PaymentIntents().ClaimConfirm(ctx, tx.DB(), reference, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		intent, err := tx.PaymentIntents().FindByReferenceForUpdate(ctx, tx.DB(), reference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrIntentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !claimed {
			return p.resolveUnclaimed(ctx, tx, intent, &result, &outcomeErr)
		}

		bookingID, err := p.reservations.Commit(ctx, tx, intent.Draft(), reference)
		if err != nil {
			if !errors.Is(err, ErrSlotUnavailable) {
				return err
			}
			intent.MarkNeedsReview("slot taken before commit", p.clock.Now())
			if uerr := tx.PaymentIntents().Update(ctx, tx.DB(), intent); uerr != nil {
				return errs.Mark(uerr, ErrDatabaseOperationFailed)
			}
			outcomeErr = ErrCommitAfterPaymentFailed
			return nil
		}

		if err := intent.MarkCommitted(bookingID, p.clock.Now()); err != nil {
			return err
		}
		if err := tx.PaymentIntents().Update(ctx, tx.DB(), intent); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &ConfirmResult{BookingID: bookingID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if outcomeErr != nil {
		if errors.Is(outcomeErr, ErrCommitAfterPaymentFailed) {
			slog.Error("confirmed payment could not be converted into a booking",
				"reference", reference)
		}
		return nil, outcomeErr
	}
	return result, nil
}

// resolveUnclaimed handles references the conditional update refused: the
// intent already left the claimable states before this call.
func (p *paymentUseCaseImpl) resolveUnclaimed(
	ctx context.Context,
	tx shared.Tx,
	intent *payment.Intent,
	result **ConfirmResult,
	outcomeErr *error,
) error {
	switch intent.Status() {
	case payment.StatusCommitted:
		if intent.BookingID() == nil {
			return errs.New("committed intent missing booking id")
		}
		*result = &ConfirmResult{BookingID: *intent.BookingID(), IsReplayed: true}
		return nil
	case payment.StatusConfirmed:
		*outcomeErr = ErrConfirmInProgress
		return nil
	case payment.StatusExpired:
		// Money moved after the polling deadline. Manual reconciliation,
		// never a silent commit.
		intent.MarkNeedsReview("success signal after expiry", p.clock.Now())
		if err := tx.PaymentIntents().Update(ctx, tx.DB(), intent); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		*outcomeErr = ErrCommitAfterPaymentFailed
		return nil
	case payment.StatusNeedsReview:
		*outcomeErr = ErrCommitAfterPaymentFailed
		return nil
	default:
		*outcomeErr = ErrPaymentFailed
		return nil
	}
}

func (p *paymentUseCaseImpl) Cancel(ctx context.Context, reference string, userID uuid.UUID) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		intent, err := tx.PaymentIntents().FindByReferenceForUpdate(ctx, tx.DB(), reference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrIntentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if intent.Draft().UserID != userID {
			return ErrNotIntentOwner
		}
		if err := intent.Cancel(p.clock.Now()); err != nil {
			return err
		}
		return tx.PaymentIntents().Update(ctx, tx.DB(), intent)
	})
}

// Fail records a gateway-reported failure. No-op once the intent left the
// claimable states.
func (p *paymentUseCaseImpl) Fail(ctx context.Context, reference string, reason string) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		intent, err := tx.PaymentIntents().FindByReferenceForUpdate(ctx, tx.DB(), reference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrIntentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !intent.Claimable() {
			return nil
		}
		intent.MarkFailed(reason, p.clock.Now())
		return tx.PaymentIntents().Update(ctx, tx.DB(), intent)
	})
}

// Expire is invoked by the poller at its deadline. No-op once terminal.
func (p *paymentUseCaseImpl) Expire(ctx context.Context, reference string) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		intent, err := tx.PaymentIntents().FindByReferenceForUpdate(ctx, tx.DB(), reference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrIntentNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := intent.Expire(p.clock.Now()); err != nil {
			if errors.Is(err, payment.ErrNotClaimable) {
				return nil
			}
			return err
		}
		return tx.PaymentIntents().Update(ctx, tx.DB(), intent)
	})
}
