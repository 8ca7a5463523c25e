package models

import "time"

// Intent identifies the conversational goal that currently owns a user's turns.
type Intent string

const (
	IntentNone      Intent = ""
	IntentStatement Intent = "statement"
	IntentBlockCard Intent = "block_card"
	IntentApplyLoan Intent = "apply_loan"
)

// StatementStep is the tagged state of the transaction statement flow.
type StatementStep string

const (
	StatementAwaitingStart StatementStep = "awaiting_start"
	StatementAwaitingEnd   StatementStep = "awaiting_end"
)

// StatementSlots holds the slots collected by the statement flow.
type StatementSlots struct {
	Step      StatementStep `json:"step"`
	StartDate time.Time     `json:"startDate,omitempty"`
	EndDate   time.Time     `json:"endDate,omitempty"`
}

// BlockCardStep is the tagged state of the card blocking flow.
type BlockCardStep string

const (
	BlockCardAwaitingType     BlockCardStep = "awaiting_type"
	BlockCardAwaitingLastFour BlockCardStep = "awaiting_last_four"
)

// BlockCardSlots holds the slots collected by the card blocking flow.
// CardType stays empty while the card type is still unknown.
type BlockCardSlots struct {
	Step     BlockCardStep `json:"step"`
	CardType CardType      `json:"cardType,omitempty"`
	LastFour string        `json:"lastFour,omitempty"`
}

// LoanStep is the tagged state of the loan application flow.
type LoanStep string

const (
	LoanAwaitingAmount LoanStep = "awaiting_amount"
	LoanAwaitingTenure LoanStep = "awaiting_tenure"
)

// LoanSlots holds the slots collected by the loan application flow.
type LoanSlots struct {
	Step         LoanStep `json:"step"`
	Amount       float64  `json:"amount,omitempty"`
	TenureMonths int      `json:"tenureMonths,omitempty"`
}

// ConversationState is the per-user dialog state: the active intent plus the
// slots collected so far. Slot structs are only non-nil while their intent is
// active, so a flow can never read slots another flow defined.
type ConversationState struct {
	UserID    string          `json:"userId"`
	Intent    Intent          `json:"intent"`
	Statement *StatementSlots `json:"statement,omitempty"`
	BlockCard *BlockCardSlots `json:"blockCard,omitempty"`
	Loan      *LoanSlots      `json:"loan,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewConversationState returns an idle state for a user seen for the first time.
func NewConversationState(userID string) *ConversationState {
	return &ConversationState{
		UserID:    userID,
		Intent:    IntentNone,
		UpdatedAt: time.Now().UTC(),
	}
}

// Active reports whether a multi-turn flow currently owns this conversation.
func (s *ConversationState) Active() bool {
	return s.Intent != IntentNone
}

// Reset returns the conversation to idle and discards all collected slots.
func (s *ConversationState) Reset() {
	s.Intent = IntentNone
	s.Statement = nil
	s.BlockCard = nil
	s.Loan = nil
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy so stores can hand out state without aliasing.
func (s *ConversationState) Clone() *ConversationState {
	c := *s
	if s.Statement != nil {
		st := *s.Statement
		c.Statement = &st
	}
	if s.BlockCard != nil {
		bc := *s.BlockCard
		c.BlockCard = &bc
	}
	if s.Loan != nil {
		l := *s.Loan
		c.Loan = &l
	}
	return &c
}
