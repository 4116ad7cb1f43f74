package repositories

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"

	"github.com/tastytalk/admin-backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// RealtimeUserRepository implements UserRepository on the Realtime Database "users" node
type RealtimeUserRepository struct {
	ref *db.Ref
}

// NewRealtimeUserRepository creates a new RealtimeUserRepository
func NewRealtimeUserRepository(client *db.Client) *RealtimeUserRepository {
	return &RealtimeUserRepository{ref: client.NewRef("users")}
}

// ListUsers retrieves every user keyed by uid
func (r *RealtimeUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var raw map[string]interface{}
	if err := r.ref.Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]models.User, 0, len(raw))
	for uid, v := range raw {
		data, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		users = append(users, decodeUser(uid, data))
	}
	return users, nil
}

// CountUsers returns the number of user records
func (r *RealtimeUserRepository) CountUsers(ctx context.Context) (int, error) {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// UpdateUser overwrites every admin-editable field of an existing user.
// Fields the admin does not manage are left as they are.
func (r *RealtimeUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	child := r.ref.Child(user.ID)

	var existing map[string]interface{}
	if err := child.Get(ctx, &existing); err != nil {
		return fmt.Errorf("getting user %s: %w", user.ID, err)
	}
	if existing == nil {
		return ErrUserNotFound
	}

	if err := child.Update(ctx, userFields(user)); err != nil {
		return fmt.Errorf("updating user %s: %w", user.ID, err)
	}
	return nil
}

func userFields(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"fullName": u.FullName,
		"birthday": u.Birthday,
		"age":      u.Age,
		"gender":   u.Gender,
		"username": u.Username,
		"email":    u.Email,
	}
}
