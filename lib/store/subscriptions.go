package store

import (
	"context"

	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
)

func (s *Store) SaveSubscription(ctx context.Context, sub *types.PushSubscription) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(sub).Error, "saving subscription")
}

// RemoveSubscriptions deletes every subscription the user registered.
func (s *Store) RemoveSubscriptions(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.PushSubscription{}).Error
	return errors.Wrapf(err, "removing subscriptions of user %d", userID)
}

// DeleteSubscription drops a single subscription, usually one the push
// service reported as gone.
func (s *Store) DeleteSubscription(ctx context.Context, sub types.PushSubscription) error {
	return errors.Wrapf(s.db.WithContext(ctx).Delete(&sub).Error, "deleting subscription %d", sub.ID)
}

func (s *Store) SubscriptionsFor(ctx context.Context, userID uint) ([]types.PushSubscription, error) {
	ret := []types.PushSubscription{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&ret).Error
	if err != nil {
		return nil, errors.Wrapf(err, "Looking for subscriptions of user %d", userID)
	}
	return ret, nil
}
