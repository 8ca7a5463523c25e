// internal/flows/applyloan/handler.go

// Package applyloan drives the loan application flow: collect an amount and
// a repayment tenure over successive turns, then submit the application.
package applyloan

import (
	"context"

	"banking-assistant/internal/bank"
	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/extract"
	"banking-assistant/internal/models"
)

const FlowName = "apply_loan"

type Handler struct {
	config *Config
	bank   bank.API
	logger logger.Logger
}

func NewHandler(config *Config, bankAPI bank.API, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		bank:   bankAPI,
		logger: log.With(map[string]interface{}{
			"flow": FlowName,
		}),
	}
}

// Start activates the flow and asks for the amount.
func (h *Handler) Start(state *models.ConversationState) string {
	state.Intent = models.IntentApplyLoan
	state.Loan = &models.LoanSlots{Step: models.LoanAwaitingAmount}
	return h.config.PromptAmount
}

// Handle advances the flow. A message without a usable number keeps the
// current step and re-prompts; a tenure answer completes the flow and resets
// state even when the backend rejects the application.
func (h *Handler) Handle(ctx context.Context, state *models.ConversationState, msg string) string {
	slots := state.Loan

	switch slots.Step {
	case models.LoanAwaitingAmount:
		amount, ok := extract.Amount(msg)
		if !ok {
			return h.config.PromptRetryAmount
		}
		slots.Amount = amount
		slots.Step = models.LoanAwaitingTenure
		return h.config.PromptTenure

	case models.LoanAwaitingTenure:
		tenure, ok := extract.WholeNumber(msg)
		if !ok {
			return h.config.PromptRetryTenure
		}
		slots.TenureMonths = tenure

		res, err := h.bank.ApplyLoan(ctx, state.UserID, slots.Amount, tenure)

		reply := ""
		if err != nil {
			reply = cerrors.UserMessage(err)
		} else {
			reply = res.Message
		}
		state.Reset()
		return reply

	default:
		h.logger.Warn("unknown loan step, restarting flow", map[string]interface{}{
			"userId": state.UserID,
			"step":   string(slots.Step),
		})
		slots.Step = models.LoanAwaitingAmount
		return h.config.PromptAmount
	}
}
