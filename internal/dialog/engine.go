// internal/dialog/engine.go
package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"banking-assistant/internal/bank"
	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/metrics"
	"banking-assistant/internal/common/observability"
	"banking-assistant/internal/flows/applyloan"
	"banking-assistant/internal/flows/blockcard"
	"banking-assistant/internal/flows/statement"
	"banking-assistant/internal/models"
)

// Intent labels for the one-shot turns, used only for metrics.
const (
	labelGreeting = "greeting"
	labelBalance  = "balance"
	labelFallback = "fallback"
)

// Engine routes each incoming message: an active flow always consumes the
// turn first, otherwise keyword routing picks a handler in fixed priority
// order. Turns for the same user are serialized; different users run
// concurrently.
type Engine struct {
	store     Store
	bank      bank.API
	statement *statement.Handler
	blockCard *blockcard.Handler
	applyLoan *applyloan.Handler
	obs       *observability.Observability
	logger    logger.Logger
	locks     keyedMutex
}

// NewEngine wires the router with its flow handlers. obs may be nil when
// OpenTelemetry reporting is disabled.
func NewEngine(store Store, bankAPI bank.API, obs *observability.Observability, log logger.Logger) *Engine {
	return &Engine{
		store:     store,
		bank:      bankAPI,
		statement: statement.NewHandler(statement.DefaultConfig(), bankAPI, log),
		blockCard: blockcard.NewHandler(blockcard.DefaultConfig(), bankAPI, log),
		applyLoan: applyloan.NewHandler(applyloan.DefaultConfig(), bankAPI, log),
		obs:       obs,
		logger:    log.With(map[string]interface{}{"component": "dialog-engine"}),
	}
}

// HandleMessage processes one user turn and returns the assistant reply.
// The returned error is reserved for infrastructure failures (the state
// store); banking backend failures surface as reply text instead.
func (e *Engine) HandleMessage(ctx context.Context, userID, raw string) (string, error) {
	started := time.Now()
	msg := strings.ToLower(strings.TrimSpace(raw))

	mu := e.locks.lock(userID)
	defer mu.Unlock()

	state, err := e.store.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	reply, intentLabel := e.route(ctx, state, msg)

	state.UpdatedAt = time.Now().UTC()
	if err := e.store.Save(ctx, state); err != nil {
		return "", err
	}

	elapsed := time.Since(started)
	metrics.MessagesProcessed.WithLabelValues(intentLabel).Inc()
	metrics.MessageDuration.WithLabelValues(intentLabel).Observe(elapsed.Seconds())
	if e.obs != nil {
		e.obs.RecordTurn(ctx, intentLabel, elapsed)
	}
	return reply, nil
}

// route dispatches one normalized message and reports the intent label the
// turn resolved to. An active flow owns the turn unconditionally; routing
// keywords are only consulted from the idle state.
func (e *Engine) route(ctx context.Context, state *models.ConversationState, msg string) (reply, intentLabel string) {
	if state.Active() {
		return e.continueFlow(ctx, state, msg)
	}

	switch {
	case msg == "hi" || msg == "hello" || msg == "hey":
		return replyMenu, labelGreeting

	case strings.Contains(msg, "statement") || strings.Contains(msg, "transactions"):
		e.flowStarted(models.IntentStatement)
		return e.statement.Start(state), string(models.IntentStatement)

	case strings.Contains(msg, "block") && strings.Contains(msg, "card"):
		e.flowStarted(models.IntentBlockCard)
		return e.blockCard.Start(state, msg), string(models.IntentBlockCard)

	case strings.Contains(msg, "loan") || strings.Contains(msg, "apply"):
		e.flowStarted(models.IntentApplyLoan)
		return e.applyLoan.Start(state), string(models.IntentApplyLoan)

	case strings.Contains(msg, "balance"):
		return e.balanceReply(ctx, state.UserID), labelBalance

	default:
		return replyFallback, labelFallback
	}
}

func (e *Engine) continueFlow(ctx context.Context, state *models.ConversationState, msg string) (string, string) {
	intent := state.Intent

	var reply string
	switch intent {
	case models.IntentStatement:
		reply = e.statement.Handle(ctx, state, msg)
	case models.IntentBlockCard:
		reply = e.blockCard.Handle(ctx, state, msg)
	case models.IntentApplyLoan:
		reply = e.applyLoan.Handle(ctx, state, msg)
	default:
		e.logger.Warn("state carries unknown intent, resetting", map[string]interface{}{
			"userId": state.UserID,
			"intent": string(intent),
		})
		state.Reset()
		return replyFallback, labelFallback
	}

	if !state.Active() {
		metrics.FlowsCompleted.WithLabelValues(string(intent), "completed").Inc()
		metrics.ActiveFlows.WithLabelValues(string(intent)).Dec()
	}
	return reply, string(intent)
}

func (e *Engine) flowStarted(intent models.Intent) {
	metrics.FlowsStarted.WithLabelValues(string(intent)).Inc()
	metrics.ActiveFlows.WithLabelValues(string(intent)).Inc()
}

func (e *Engine) balanceReply(ctx context.Context, userID string) string {
	balance, err := e.bank.GetBalance(ctx, userID)
	if err != nil {
		e.logger.WithError(err).Error("balance inquiry failed", map[string]interface{}{
			"userId": userID,
		})
		return cerrors.UserMessage(err)
	}
	return fmt.Sprintf("Your %s account balance is %s %.2f.",
		balance.AccountType, balance.Currency, balance.Amount)
}
