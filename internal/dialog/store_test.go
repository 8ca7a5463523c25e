package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-assistant/internal/models"
)

func TestMemoryStoreCreatesFreshState(t *testing.T) {
	store := NewMemoryStore(0)

	state, err := store.Get(context.Background(), "user1")

	require.NoError(t, err)
	assert.Equal(t, "user1", state.UserID)
	assert.False(t, state.Active())
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	state.Intent = models.IntentStatement
	state.Statement = &models.StatementSlots{Step: models.StatementAwaitingEnd}
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, models.IntentStatement, loaded.Intent)
	require.NotNil(t, loaded.Statement)
	assert.Equal(t, models.StatementAwaitingEnd, loaded.Statement.Step)
}

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	state.Intent = models.IntentApplyLoan
	state.Loan = &models.LoanSlots{Step: models.LoanAwaitingAmount}
	require.NoError(t, store.Save(ctx, state))

	// Mutations after Save must not leak into the stored copy.
	state.Loan.Amount = 99999

	loaded, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Zero(t, loaded.Loan.Amount)
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	state.Intent = models.IntentBlockCard
	state.BlockCard = &models.BlockCardSlots{Step: models.BlockCardAwaitingType}
	require.NoError(t, store.Save(ctx, state))

	other, err := store.Get(ctx, "user2")
	require.NoError(t, err)
	assert.False(t, other.Active())
	assert.Nil(t, other.BlockCard)
}

func TestMemoryStoreTTLExpiresIdleState(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	state, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	state.Intent = models.IntentStatement
	state.Statement = &models.StatementSlots{Step: models.StatementAwaitingStart}
	state.UpdatedAt = time.Now().UTC().Add(-2 * time.Minute)
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.False(t, loaded.Active())
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	state, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	state.Intent = models.IntentStatement
	state.Statement = &models.StatementSlots{Step: models.StatementAwaitingStart}
	state.UpdatedAt = time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Get(ctx, "user1")
	require.NoError(t, err)
	assert.True(t, loaded.Active())
}
