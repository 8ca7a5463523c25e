// internal/bank/memory.go
package bank

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
	"banking-assistant/internal/notify"
)

// Memory is an in-memory banking backend seeded with one demo customer.
// It is the default backend for local development and tests.
type Memory struct {
	mu        sync.Mutex
	customers map[string]models.Customer
	accounts  map[string]models.Account
	cards     map[string][]models.Card
	txns      map[string][]models.Transaction
	loans     map[string][]models.Loan
	notifier  notify.Notifier
	logger    logger.Logger
}

// NewMemory builds the seeded backend. A nil notifier disables customer
// notifications.
func NewMemory(log logger.Logger, notifier notify.Notifier) *Memory {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	m := &Memory{
		customers: map[string]models.Customer{
			"user1": {UserID: "user1", Name: "Alice", Email: "alice@example.com", Phone: "1234567890"},
		},
		accounts: map[string]models.Account{
			"user1": {UserID: "user1", AccountType: "savings", Balance: 12500.75, Currency: "INR"},
		},
		cards: map[string][]models.Card{
			"user1": {
				{UserID: "user1", Type: models.CardTypeDebit, LastFour: "4567", IssuedAt: now},
				{UserID: "user1", Type: models.CardTypeCredit, LastFour: "9876", IssuedAt: now},
			},
		},
		txns: map[string][]models.Transaction{
			"user1": {
				{Date: today, Description: "Salary Credit", Amount: 50000.0},
				{Date: today.AddDate(0, 0, -5), Description: "ATM Withdrawal", Amount: -2000.0},
			},
		},
		loans:    make(map[string][]models.Loan),
		notifier: notifier,
		logger:   log.With(map[string]interface{}{"backend": "memory"}),
	}
	return m
}

func (m *Memory) GetBalance(ctx context.Context, userID string) (*Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[userID]
	if !ok {
		return nil, cerrors.NewAccountNotFoundError(userID)
	}
	return &Balance{AccountType: acct.AccountType, Amount: acct.Balance, Currency: acct.Currency}, nil
}

func (m *Memory) GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	txns := m.txns[userID]
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	return out, nil
}

func (m *Memory) BlockCard(ctx context.Context, userID string, cardType models.CardType, lastFour string) (*BlockResult, error) {
	m.mu.Lock()

	var blocked *models.Card
	for i := range m.cards[userID] {
		card := &m.cards[userID][i]
		if card.Type == cardType && card.LastFour == lastFour {
			card.Blocked = true
			blocked = card
			break
		}
	}

	if blocked == nil {
		m.mu.Unlock()
		return nil, cerrors.NewCardMismatchError(string(cardType), lastFour)
	}

	customer := m.customers[userID]
	m.mu.Unlock()

	blockID := fmt.Sprintf("BLOCK-%s", shortID())
	m.notifyCardBlocked(ctx, customer, cardType, lastFour)

	return &BlockResult{
		BlockID: blockID,
		Message: fmt.Sprintf("%s card ending in %s blocked.", titleCase(string(cardType)), lastFour),
	}, nil
}

func (m *Memory) ApplyLoan(ctx context.Context, userID string, amount float64, tenureMonths int) (*LoanResult, error) {
	loanID := fmt.Sprintf("LOAN-%s", shortID())
	loan := models.Loan{
		ID:           loanID,
		UserID:       userID,
		Amount:       amount,
		TenureMonths: tenureMonths,
		Status:       "PENDING",
		AppliedAt:    time.Now().UTC(),
	}

	m.mu.Lock()
	m.loans[userID] = append(m.loans[userID], loan)
	customer := m.customers[userID]
	m.mu.Unlock()

	m.notifyLoanSubmitted(ctx, customer, amount, tenureMonths, loanID)

	return &LoanResult{
		RequestID: loanID,
		Message:   fmt.Sprintf("Loan of INR %.2f for %d months submitted.", amount, tenureMonths),
	}, nil
}

// Loans returns the submitted applications for a user, mostly for tests.
func (m *Memory) Loans(userID string) []models.Loan {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Loan, len(m.loans[userID]))
	copy(out, m.loans[userID])
	return out
}

func (m *Memory) notifyCardBlocked(ctx context.Context, customer models.Customer, cardType models.CardType, lastFour string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.CardBlocked(ctx, customer, cardType, lastFour); err != nil {
		m.logger.Warn("card block notification failed", map[string]interface{}{
			"userId": customer.UserID,
			"error":  err.Error(),
		})
	}
}

func (m *Memory) notifyLoanSubmitted(ctx context.Context, customer models.Customer, amount float64, tenureMonths int, requestID string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.LoanSubmitted(ctx, customer, amount, tenureMonths, requestID); err != nil {
		m.logger.Warn("loan submission notification failed", map[string]interface{}{
			"userId": customer.UserID,
			"error":  err.Error(),
		})
	}
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
