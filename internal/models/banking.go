package models

import "time"

// CardType distinguishes the two card products a customer can hold.
type CardType string

const (
	CardTypeDebit  CardType = "debit"
	CardTypeCredit CardType = "credit"
)

// Customer holds the contact details used for notifications.
type Customer struct {
	UserID string `json:"userId" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email,omitempty" db:"email"`
	Phone  string `json:"phone,omitempty" db:"phone"`
}

// Account is a customer's bank account as reported by the backend.
type Account struct {
	UserID      string  `json:"userId" db:"user_id"`
	AccountType string  `json:"accountType" db:"account_type"`
	Balance     float64 `json:"balance" db:"balance"`
	Currency    string  `json:"currency" db:"currency"`
}

// Card is a payment card on a customer's account.
type Card struct {
	UserID   string    `json:"userId" db:"user_id"`
	Type     CardType  `json:"type" db:"card_type"`
	LastFour string    `json:"lastFour" db:"last_four"`
	Blocked  bool      `json:"blocked" db:"is_blocked"`
	IssuedAt time.Time `json:"issuedAt" db:"issued_at"`
}

// Transaction is a single ledger entry. Amount is signed: credits are
// positive, debits negative. The dialog engine only reads these.
type Transaction struct {
	Date        time.Time `json:"date" db:"txn_date"`
	Description string    `json:"description" db:"description"`
	Amount      float64   `json:"amount" db:"amount"`
}

// Loan is a submitted loan application.
type Loan struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	Amount       float64   `json:"amount" db:"amount"`
	TenureMonths int       `json:"tenureMonths" db:"tenure_months"`
	Status       string    `json:"status" db:"status"`
	AppliedAt    time.Time `json:"appliedAt" db:"applied_at"`
}
