// internal/flows/blockcard/handler.go

// Package blockcard drives the card blocking flow: infer the card type from
// the trigger message (asking a follow-up question when it names neither
// type), collect the last four digits, then block the card.
package blockcard

import (
	"context"
	"strings"

	"banking-assistant/internal/bank"
	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/extract"
	"banking-assistant/internal/models"
)

const FlowName = "block_card"

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

// Start activates the flow, inferring the card type from the trigger message.
func (h *Handler) Start(state *models.ConversationState, msg string) string {
	state.Intent = models.IntentBlockCard
	state.BlockCard = &models.BlockCardSlots{}

	cardType := inferCardType(msg)
	if cardType == "" {
		state.BlockCard.Step = models.BlockCardAwaitingType
		return h.config.PromptType
	}

	state.BlockCard.CardType = cardType
	state.BlockCard.Step = models.BlockCardAwaitingLastFour
	return h.config.PromptLastFour
}

// Handle advances the flow. When the type-selection answer names neither
// debit nor credit the flow proceeds to the last-four question with the card
// type still unset; the backend then reports a mismatch. That matches the
// reference behavior and is deliberately not repaired here.
func (h *Handler) Handle(ctx context.Context, state *models.ConversationState, msg string) string {
	slots := state.BlockCard

	switch slots.Step {
	case models.BlockCardAwaitingType:
		slots.CardType = inferCardType(msg)
		if slots.CardType == "" {
			h.logger.Warn("card type still unknown after follow-up", map[string]interface{}{
				"userId": state.UserID,
			})
		}
		slots.Step = models.BlockCardAwaitingLastFour
		return h.config.PromptLastFour

	case models.BlockCardAwaitingLastFour:
		lastFour, ok := extract.LastFour(msg)
		if !ok {
			return h.config.PromptRetryDigit
		}
		slots.LastFour = lastFour

		res, err := h.bank.BlockCard(ctx, state.UserID, slots.CardType, lastFour)

		// The flow terminates either way; a backend failure message goes
		// back to the user but the collected slots are discarded.
		reply := ""
		if err != nil {
			reply = cerrors.UserMessage(err)
		} else {
			reply = res.Message
		}
		state.Reset()
		return reply

	default:
		h.logger.Warn("unknown block card step, restarting flow", map[string]interface{}{
			"userId": state.UserID,
			"step":   string(slots.Step),
		})
		slots.Step = models.BlockCardAwaitingType
		return h.config.PromptType
	}
}

func inferCardType(msg string) models.CardType {
	switch {
	case strings.Contains(msg, "debit"):
		return models.CardTypeDebit
	case strings.Contains(msg, "credit"):
		return models.CardTypeCredit
	default:
		return ""
	}
}
