// internal/bank/postgres.go
package bank

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/models"
	"banking-assistant/internal/notify"
)

// Postgres is the production banking backend over database/sql.
type Postgres struct {
	db       *sql.DB
	notifier notify.Notifier
	logger   logger.Logger
}

// NewPostgres builds the backend. A nil notifier disables customer
// notifications.
func NewPostgres(db *sql.DB, log logger.Logger, notifier notify.Notifier) *Postgres {
	return &Postgres{
		db:       db,
		notifier: notifier,
		logger:   log.With(map[string]interface{}{"backend": "postgres"}),
	}
}

func (p *Postgres) GetBalance(ctx context.Context, userID string) (*Balance, error) {
	const query = `SELECT account_type, balance, currency FROM accounts WHERE user_id = $1`

	var b Balance
	err := p.db.QueryRowContext(ctx, query, userID).Scan(&b.AccountType, &b.Amount, &b.Currency)
	if err == sql.ErrNoRows {
		return nil, cerrors.NewAccountNotFoundError(userID)
	}
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("get_balance", err)
	}
	return &b, nil
}

func (p *Postgres) GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	const query = `SELECT txn_date, description, amount FROM transactions WHERE user_id = $1 ORDER BY txn_date`

	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("get_transactions", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.Date, &t.Description, &t.Amount); err != nil {
			return nil, cerrors.NewQueryExecutionFailedError("get_transactions", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("get_transactions", err)
	}
	return txns, nil
}

func (p *Postgres) BlockCard(ctx context.Context, userID string, cardType models.CardType, lastFour string) (*BlockResult, error) {
	const query = `UPDATE cards SET is_blocked = TRUE WHERE user_id = $1 AND card_type = $2 AND last_four = $3`

	res, err := p.db.ExecContext(ctx, query, userID, string(cardType), lastFour)
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("block_card", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, cerrors.NewQueryExecutionFailedError("block_card", err)
	}
	if affected == 0 {
		return nil, cerrors.NewCardMismatchError(string(cardType), lastFour)
	}

	blockID := fmt.Sprintf("BLOCK-%s", shortID())
	p.notifyCardBlocked(ctx, userID, cardType, lastFour)

	return &BlockResult{
		BlockID: blockID,
		Message: fmt.Sprintf("%s card ending in %s blocked.", titleCase(string(cardType)), lastFour),
	}, nil
}

func (p *Postgres) ApplyLoan(ctx context.Context, userID string, amount float64, tenureMonths int) (*LoanResult, error) {
	const query = `INSERT INTO loans (id, user_id, amount, tenure_months, status, applied_at) VALUES ($1, $2, $3, $4, $5, $6)`

	loanID := fmt.Sprintf("LOAN-%s", shortID())
	_, err := p.db.ExecContext(ctx, query, loanID, userID, amount, tenureMonths, "PENDING", time.Now().UTC())
	if err != nil {
		return nil, cerrors.NewLoanSubmissionFailedError(err)
	}

	p.notifyLoanSubmitted(ctx, userID, amount, tenureMonths, loanID)

	return &LoanResult{
		RequestID: loanID,
		Message:   fmt.Sprintf("Loan of INR %.2f for %d months submitted.", amount, tenureMonths),
	}, nil
}

func (p *Postgres) lookupCustomer(ctx context.Context, userID string) (models.Customer, error) {
	const query = `SELECT user_id, name, email, phone FROM customers WHERE user_id = $1`

	var c models.Customer
	err := p.db.QueryRowContext(ctx, query, userID).Scan(&c.UserID, &c.Name, &c.Email, &c.Phone)
	return c, err
}

func (p *Postgres) notifyCardBlocked(ctx context.Context, userID string, cardType models.CardType, lastFour string) {
	if p.notifier == nil {
		return
	}
	customer, err := p.lookupCustomer(ctx, userID)
	if err != nil {
		p.logger.Warn("customer lookup for notification failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return
	}
	if err := p.notifier.CardBlocked(ctx, customer, cardType, lastFour); err != nil {
		p.logger.Warn("card block notification failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}

func (p *Postgres) notifyLoanSubmitted(ctx context.Context, userID string, amount float64, tenureMonths int, requestID string) {
	if p.notifier == nil {
		return
	}
	customer, err := p.lookupCustomer(ctx, userID)
	if err != nil {
		p.logger.Warn("customer lookup for notification failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return
	}
	if err := p.notifier.LoanSubmitted(ctx, customer, amount, tenureMonths, requestID); err != nil {
		p.logger.Warn("loan submission notification failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}
