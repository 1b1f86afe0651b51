package payments

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// HandleWebhook verifies a Stripe webhook signature and reconciles the event.
// Completed checkouts mark the record paid (unlocking document checkouts);
// expired checkouts mark it cancelled. Unrecognized event types are ignored.
func (s *DefaultPaymentService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.WebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		sess, err := parseCheckoutSession(event)
		if err != nil {
			return err
		}
		if _, err := s.ConfirmReturn(sess.ID, OutcomeSuccess); err != nil {
			return fmt.Errorf("failed to reconcile completed checkout %s: %w", sess.ID, err)
		}
	case "checkout.session.expired":
		sess, err := parseCheckoutSession(event)
		if err != nil {
			return err
		}
		if _, err := s.ConfirmReturn(sess.ID, OutcomeCancelled); err != nil {
			return fmt.Errorf("failed to reconcile expired checkout %s: %w", sess.ID, err)
		}
	default:
		s.Logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
	}
	return nil
}

func parseCheckoutSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session from event %s: %w", event.ID, err)
	}
	return &sess, nil
}
