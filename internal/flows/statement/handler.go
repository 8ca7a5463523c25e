// internal/flows/statement/handler.go

// Package statement drives the transaction statement flow: collect a start
// and an end date over successive turns, then render the transactions whose
// date falls in the inclusive range.
package statement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"banking-assistant/internal/bank"
	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/extract"
	"banking-assistant/internal/models"
)

const FlowName = "statement"

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

// Start activates the flow and asks for the first slot.
func (h *Handler) Start(state *models.ConversationState) string {
	state.Intent = models.IntentStatement
	state.Statement = &models.StatementSlots{Step: models.StatementAwaitingStart}
	return h.config.PromptStart
}

// Handle advances the flow with the user's next normalized message. A failed
// date parse keeps the current step and re-prompts; completing the end date
// queries the backend, renders the statement and resets the conversation.
func (h *Handler) Handle(ctx context.Context, state *models.ConversationState, msg string) string {
	slots := state.Statement

	switch slots.Step {
	case models.StatementAwaitingStart:
		d, ok := extract.Date(msg)
		if !ok {
			return h.config.ErrStartDate
		}
		slots.StartDate = d
		slots.Step = models.StatementAwaitingEnd
		return h.config.PromptEnd

	case models.StatementAwaitingEnd:
		d, ok := extract.Date(msg)
		if !ok {
			return h.config.ErrEndDate
		}
		slots.EndDate = d
		reply := h.render(ctx, state.UserID, slots.StartDate, slots.EndDate)
		state.Reset()
		return reply

	default:
		h.logger.Warn("unknown statement step, restarting flow", map[string]interface{}{
			"userId": state.UserID,
			"step":   string(slots.Step),
		})
		slots.Step = models.StatementAwaitingStart
		return h.config.PromptStart
	}
}

func (h *Handler) render(ctx context.Context, userID string, start, end time.Time) string {
	txns, err := h.bank.GetTransactions(ctx, userID)
	if err != nil {
		h.logger.Error("transaction query failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return cerrors.UserMessage(err)
	}

	var lines []string
	for _, t := range txns {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s %+.2f", t.Date.Format("2006-01-02"), t.Description, t.Amount))
	}

	if len(lines) == 0 {
		return h.config.ReplyNoMatch
	}
	return h.config.ReplyHeader + "\n" + strings.Join(lines, "\n")
}
