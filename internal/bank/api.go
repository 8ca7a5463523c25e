// Package bank defines the contract the dialog engine depends on for the
// actual banking operations, together with the backend implementations.
// Backend-reported business failures come back as *errors.StandardError
// whose Message is safe to show to the customer verbatim.
package bank

import (
	"context"

	"banking-assistant/internal/models"
)

// Balance is the result of a balance inquiry. AccountType is included so
// the reply can name the account the balance belongs to.
type Balance struct {
	AccountType string  `json:"accountType"`
	Amount      float64 `json:"balance"`
	Currency    string  `json:"currency"`
}

// BlockResult confirms a card block.
type BlockResult struct {
	BlockID string `json:"blockId"`
	Message string `json:"message"`
}

// LoanResult confirms a submitted loan application.
type LoanResult struct {
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
}

// API is the banking backend boundary. Calls are blocking; range filtering
// of transactions is the caller's job.
type API interface {
	GetBalance(ctx context.Context, userID string) (*Balance, error)
	GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	BlockCard(ctx context.Context, userID string, cardType models.CardType, lastFour string) (*BlockResult, error)
	ApplyLoan(ctx context.Context, userID string, amount float64, tenureMonths int) (*LoanResult, error)
}
