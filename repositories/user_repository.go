package repositories

import (
	"context"

	"github.com/HSouheill/barrim_admin/models"
)

type UserRepository struct {
	store DocumentStore
}

func NewUserRepository(store DocumentStore) *UserRepository {
	return &UserRepository{store: store}
}

// FindByUserIDs looks up every profile whose userId is in userIDs with a
// single query
func (r *UserRepository) FindByUserIDs(ctx context.Context, userIDs []string, limit int) ([]models.UserProfile, error) {
	if len(userIDs) == 0 {
		return []models.UserProfile{}, nil
	}
	values := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		values[i] = id
	}

	result, err := r.store.List(ctx, UsersCollection, ListOptions{
		Filters: []Filter{Equal("userId", values...)},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[models.UserProfile](UsersCollection, result.Documents), nil
}

// FindByUserID returns the profiles matching one userId and the total
// number of matches
func (r *UserRepository) FindByUserID(ctx context.Context, userID string) ([]models.UserProfile, int64, error) {
	result, err := r.store.List(ctx, UsersCollection, ListOptions{
		Filters: []Filter{Equal("userId", userID)},
	})
	if err != nil {
		return nil, 0, err
	}
	return decodeList[models.UserProfile](UsersCollection, result.Documents), result.Total, nil
}

// SetWholesaleApproved updates the wholesale flag on the profile document
// with the given store id
func (r *UserRepository) SetWholesaleApproved(ctx context.Context, id string, approved bool) error {
	_, err := r.store.Update(ctx, UsersCollection, id, Document{"isWholesaleApproved": approved})
	return err
}
