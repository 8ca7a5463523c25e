// test/e2e/e2e_test.go
//
// Scripted conversations through the full stack: HTTP shell, dialog engine,
// state store and the seeded in-memory banking backend.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-assistant/internal/bank"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/dialog"
	"banking-assistant/internal/server"
)

type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T) *client {
	log := logger.NewTestLogger(t)
	engine := dialog.NewEngine(dialog.NewMemoryStore(0), bank.NewMemory(log, nil), nil, log)
	srv, err := server.New(engine, server.Options{}, log)
	require.NoError(t, err)
	return &client{t: t, handler: srv.Handler()}
}

func (c *client) say(userID, message string) string {
	c.t.Helper()

	body, err := json.Marshal(map[string]string{"user_id": userID, "message": message})
	require.NoError(c.t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	require.Equal(c.t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp struct {
		Reply string `json:"reply"`
	}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Reply
}

func TestGreetingAndBalanceConversation(t *testing.T) {
	c := newClient(t)

	reply := c.say("user1", "Hi")
	assert.Contains(t, reply, "How can I help?")
	assert.Contains(t, reply, "Check account balance")

	reply = c.say("user1", "what is my balance")
	assert.Equal(t, "Your savings account balance is INR 12500.75.", reply)
}

func TestStatementConversation(t *testing.T) {
	c := newClient(t)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	reply := c.say("user1", "I need a statement")
	assert.Equal(t, "Sure—please provide the start date (YYYY-MM-DD).", reply)

	// A malformed date re-prompts without losing the flow.
	reply = c.say("user1", "last week")
	assert.Equal(t, "Invalid date. Enter start date as YYYY-MM-DD.", reply)

	reply = c.say("user1", today.AddDate(0, 0, -7).Format("2006-01-02"))
	assert.Equal(t, "Great—now please provide the end date (YYYY-MM-DD).", reply)

	reply = c.say("user1", today.Format("2006-01-02"))
	assert.Contains(t, reply, "Here are your transactions:")
	assert.Contains(t, reply, fmt.Sprintf("%s: Salary Credit +50000.00", today.Format("2006-01-02")))
	assert.Contains(t, reply, fmt.Sprintf("%s: ATM Withdrawal -2000.00", today.AddDate(0, 0, -5).Format("2006-01-02")))
}

func TestStatementEmptyRangeConversation(t *testing.T) {
	c := newClient(t)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	c.say("user1", "statement please")
	c.say("user1", today.AddDate(0, 0, -30).Format("2006-01-02"))
	reply := c.say("user1", today.AddDate(0, 0, -20).Format("2006-01-02"))

	assert.Equal(t, "No transactions found in that range.", reply)
}

func TestBlockCardConversation(t *testing.T) {
	c := newClient(t)

	reply := c.say("user1", "please block my card")
	assert.Equal(t, "Which card type—debit or credit?", reply)

	reply = c.say("user1", "credit")
	assert.Equal(t, "Sure—what are the last four digits of the card?", reply)

	reply = c.say("user1", "no digits here")
	assert.Equal(t, "Please send the last four digits of your card.", reply)

	reply = c.say("user1", "9876")
	assert.Equal(t, "Credit card ending in 9876 blocked.", reply)
}

func TestApplyLoanConversation(t *testing.T) {
	c := newClient(t)

	reply := c.say("user1", "i want to apply for a loan")
	assert.Equal(t, "Sure—how much would you like to borrow (in INR)?", reply)

	reply = c.say("user1", "100000")
	assert.Equal(t, "Got it. Over how many months would you like to repay?", reply)

	reply = c.say("user1", "36")
	assert.Equal(t, "Loan of INR 100000.00 for 36 months submitted.", reply)
}

func TestTwoUsersInterleaved(t *testing.T) {
	c := newClient(t)

	reply := c.say("user1", "block my debit card")
	assert.Equal(t, "Sure—what are the last four digits of the card?", reply)

	// A second user's greeting routes normally while the first is mid-flow.
	reply = c.say("user2", "hello")
	assert.Contains(t, reply, "How can I help?")

	reply = c.say("user1", "4567")
	assert.Equal(t, "Debit card ending in 4567 blocked.", reply)
}

func TestFallbackConversation(t *testing.T) {
	c := newClient(t)

	reply := c.say("user1", "sing me a song")
	assert.Contains(t, reply, "Sorry, I didn't understand that.")
	assert.Contains(t, reply, "Or just say \"Hi\" for options.")
}
