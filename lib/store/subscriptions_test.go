package store

import (
	"context"
	"testing"

	"github.com/oliverisaac/gratitude/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mina := mustRegister(t, s, "mina", types.RoleStudent)
	jun := mustRegister(t, s, "jun", types.RoleStudent)

	phone := types.PushSubscription{UserID: mina.ID, Endpoint: "https://push/phone"}
	laptop := types.PushSubscription{UserID: mina.ID, Endpoint: "https://push/laptop"}
	other := types.PushSubscription{UserID: jun.ID, Endpoint: "https://push/jun"}
	for _, sub := range []*types.PushSubscription{&phone, &laptop, &other} {
		require.NoError(t, s.SaveSubscription(ctx, sub))
		assert.NotZero(t, sub.ID)
	}

	user, err := s.UserByID(ctx, mina.ID)
	require.NoError(t, err)
	assert.Len(t, user.PushSubscriptions, 2)

	require.NoError(t, s.DeleteSubscription(ctx, phone))
	subs, err := s.SubscriptionsFor(ctx, mina.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push/laptop", subs[0].Endpoint)

	require.NoError(t, s.RemoveSubscriptions(ctx, mina.ID))
	subs, err = s.SubscriptionsFor(ctx, mina.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)

	subs, err = s.SubscriptionsFor(ctx, jun.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}
