package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// RefundProcessor executes the refund decided by the cancellation policy.
// The core computes percentages; money moves here and only here.
type RefundProcessor interface {
	IssueRefund(ctx context.Context, sessionID, paymentIntentID string, percentage int) error
}

// StripeRefundProcessor issues refunds against the session's payment intent.
type StripeRefundProcessor struct {
	Logger *zap.Logger
}

func NewStripeRefundProcessor(logger *zap.Logger) *StripeRefundProcessor {
	return &StripeRefundProcessor{Logger: logger}
}

func (p *StripeRefundProcessor) IssueRefund(ctx context.Context, sessionID, paymentIntentID string, percentage int) error {
	if percentage <= 0 || paymentIntentID == "" {
		p.Logger.Info("no refund to issue",
			zap.String("sessionID", sessionID), zap.Int("percentage", percentage))
		return nil
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Metadata:      map[string]string{"sessionId": sessionID},
	}
	if percentage < 100 {
		pi, err := paymentintent.Get(paymentIntentID, nil)
		if err != nil {
			return fmt.Errorf("failed to fetch payment intent %s: %w", paymentIntentID, err)
		}
		params.Amount = stripe.Int64(pi.Amount * int64(percentage) / 100)
	}

	r, err := refund.New(params)
	if err != nil {
		return fmt.Errorf("refund for session %s failed: %w", sessionID, err)
	}
	p.Logger.Info("refund issued",
		zap.String("sessionID", sessionID),
		zap.String("refundID", r.ID),
		zap.Int("percentage", percentage))
	return nil
}
