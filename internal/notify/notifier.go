// Package notify delivers best-effort customer notifications for completed
// banking operations. Delivery failures are reported to the caller for
// logging but must never reach the conversation.
package notify

import (
	"context"

	"banking-assistant/internal/models"
)

// Notifier is implemented by anything able to reach the customer out of band.
type Notifier interface {
	CardBlocked(ctx context.Context, customer models.Customer, cardType models.CardType, lastFour string) error
	LoanSubmitted(ctx context.Context, customer models.Customer, amount float64, tenureMonths int, requestID string) error
}
