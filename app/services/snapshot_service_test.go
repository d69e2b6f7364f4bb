package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/config"
	"github.com/rohanwest/pancake/pkg/auth"
	"github.com/rohanwest/pancake/pkg/storage"
)

func setupSnapshot(t *testing.T) *SnapshotService {
	t.Helper()
	setupDB(t)
	config.Set("STORAGE_DISK", "local")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()
	return NewSnapshotService()
}

func TestSnapshotRoundTrip(t *testing.T) {
	svc := setupSnapshot(t)
	authSvc := NewAuthService()
	orderSvc := NewOrderService()
	rewardSvc := NewRewardService()

	user, err := authSvc.Signup("alice@example.com", "secret123")
	require.NoError(t, err)
	order, err := orderSvc.Create(user.ID, user.Email, models.RawJSON(`["waffle"]`), 7.25)
	require.NoError(t, err)
	reward, err := rewardSvc.Issue(models.Reward{UserID: user.ID, Title: "Welcome", Points: 50})
	require.NoError(t, err)

	path, err := svc.Export()
	require.NoError(t, err)
	assert.True(t, storage.Exists(path))

	// Wreck the database, then restore from the snapshot.
	setupDB(t)
	snap, err := svc.Restore()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"users": 1, "orders": 1, "rewards": 1}, snap.Counts())

	restored, err := authSvc.ListUsers()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, user.ID, restored[0].ID)
	assert.Equal(t, user.Email, restored[0].Email)

	// The bcrypt hash must survive, so the old password still logs in.
	assert.True(t, auth.CheckPassword(restored[0].Password, "secret123"))

	orders, err := orderSvc.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.JSONEq(t, `["waffle"]`, string(orders[0].Items))

	rewards, err := rewardSvc.List()
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, reward.ID, rewards[0].ID)
}

func TestSnapshotLoadMissingDocument(t *testing.T) {
	svc := setupSnapshot(t)

	snap := svc.Load()
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Orders)
	assert.Empty(t, snap.Rewards)
}

func TestSnapshotLoadCorruptDocument(t *testing.T) {
	svc := setupSnapshot(t)

	require.NoError(t, storage.Put(config.SnapshotPath(), []byte("{not json")))

	snap := svc.Load()
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Orders)
	assert.Empty(t, snap.Rewards)
}

func TestRestoreReplacesExistingData(t *testing.T) {
	svc := setupSnapshot(t)
	orderSvc := NewOrderService()

	_, err := orderSvc.Create("user-1", "a@example.com", nil, 1)
	require.NoError(t, err)

	// Export the single-order state, add another order, then restore.
	_, err = svc.Export()
	require.NoError(t, err)
	_, err = orderSvc.Create("user-2", "b@example.com", nil, 2)
	require.NoError(t, err)

	snap, err := svc.Restore()
	require.NoError(t, err)
	assert.Len(t, snap.Orders, 1)

	orders, err := orderSvc.List()
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
