package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-service/models"
	"storefront-service/repository"
)

func TestCheckoutState_RoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	repo := repository.NewRedisCheckoutRepository(client, time.Hour, zap.NewNop())

	ctx := context.Background()

	// nothing recorded yet
	step, err := repo.GetStep(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, step)
	addr, err := repo.GetAddress(ctx, "u1")
	assert.NoError(t, err)
	assert.Nil(t, addr)

	assert.NoError(t, repo.SaveStep(ctx, "u1", "payment"))
	assert.NoError(t, repo.SaveAddress(ctx, "u1", models.ShippingAddress{
		Address:    "221B Baker Street",
		City:       "London",
		PostalCode: "NW1 6XE",
		Country:    "UK",
	}))
	assert.NoError(t, repo.SavePaymentMethod(ctx, "u1", "PayPal"))

	step, err = repo.GetStep(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "payment", step)
	addr, err = repo.GetAddress(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "London", addr.City)
	method, err := repo.GetPaymentMethod(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "PayPal", method)
}

func TestCheckoutGetAddress_CorruptRecordIsDiscarded(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := repository.NewRedisCheckoutRepository(client, time.Hour, zap.NewNop())

	assert.NoError(t, mr.Set("shipping:user:u1", "##garbage##"))

	addr, err := repo.GetAddress(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Nil(t, addr)
	assert.False(t, mr.Exists("shipping:user:u1"))
}

func TestCheckoutClear_RemovesFlowState(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := repository.NewRedisCheckoutRepository(client, time.Hour, zap.NewNop())

	ctx := context.Background()
	assert.NoError(t, repo.SaveStep(ctx, "u1", "review"))
	assert.NoError(t, repo.SaveAddress(ctx, "u1", models.ShippingAddress{Address: "221B Baker Street", City: "London", PostalCode: "NW1 6XE", Country: "UK"}))
	assert.NoError(t, repo.SavePaymentMethod(ctx, "u1", "Stripe"))

	assert.NoError(t, repo.Clear(ctx, "u1"))
	assert.False(t, mr.Exists("checkout:step:user:u1"))
	assert.False(t, mr.Exists("shipping:user:u1"))
	assert.False(t, mr.Exists("payment:user:u1"))
}

func TestSubmitLock_SingleHolder(t *testing.T) {
	_, client := newTestRedis(t)
	repo := repository.NewRedisCheckoutRepository(client, time.Hour, zap.NewNop())

	ctx := context.Background()
	acquired, err := repo.AcquireSubmitLock(ctx, "u1", 30*time.Second)
	assert.NoError(t, err)
	assert.True(t, acquired)

	// the same user cannot acquire twice
	acquired, err = repo.AcquireSubmitLock(ctx, "u1", 30*time.Second)
	assert.NoError(t, err)
	assert.False(t, acquired)

	// another user's lock is independent
	acquired, err = repo.AcquireSubmitLock(ctx, "u2", 30*time.Second)
	assert.NoError(t, err)
	assert.True(t, acquired)

	assert.NoError(t, repo.ReleaseSubmitLock(ctx, "u1"))
	acquired, err = repo.AcquireSubmitLock(ctx, "u1", 30*time.Second)
	assert.NoError(t, err)
	assert.True(t, acquired)
}

func TestSubmitLock_ExpiresWithTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := repository.NewRedisCheckoutRepository(client, time.Hour, zap.NewNop())

	ctx := context.Background()
	acquired, err := repo.AcquireSubmitLock(ctx, "u1", 30*time.Second)
	assert.NoError(t, err)
	assert.True(t, acquired)

	mr.FastForward(31 * time.Second)

	acquired, err = repo.AcquireSubmitLock(ctx, "u1", 30*time.Second)
	assert.NoError(t, err)
	assert.True(t, acquired)
}
