// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/internal/repositories"
)

// Dishes is an in-memory DishRepository. Set Err to make every call fail.
type Dishes struct {
	mu     sync.Mutex
	byID   map[string]models.Dish
	nextID int
	Err    error
}

func NewDishes(dishes ...models.Dish) *Dishes {
	d := &Dishes{byID: make(map[string]models.Dish)}
	for _, dish := range dishes {
		d.byID[dish.ID] = dish
	}
	return d
}

func (d *Dishes) ListDishes(context.Context) ([]models.Dish, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	out := make([]models.Dish, 0, len(d.byID))
	for _, dish := range d.byID {
		out = append(out, dish)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Dishes) GetDish(_ context.Context, id string) (*models.Dish, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	dish, ok := d.byID[id]
	if !ok {
		return nil, repositories.ErrDishNotFound
	}
	return &dish, nil
}

func (d *Dishes) CreateDish(_ context.Context, dish *models.Dish) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return "", d.Err
	}
	d.nextID++
	dish.ID = fmt.Sprintf("new-%d", d.nextID)
	d.byID[dish.ID] = *dish
	return dish.ID, nil
}

func (d *Dishes) UpdateDish(_ context.Context, id string, u models.DishUpdate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	dish, ok := d.byID[id]
	if !ok {
		return repositories.ErrDishNotFound
	}
	dish.Name = u.Name
	dish.Category = u.Category
	dish.Servings = u.Servings
	dish.Duration = u.Duration
	dish.Source = u.Source
	dish.Ingredients = u.Ingredients
	dish.Procedures = u.Procedures
	if u.ImageURL != "" {
		dish.ImageURL = u.ImageURL
	}
	d.byID[id] = dish
	return nil
}

func (d *Dishes) SetArchived(_ context.Context, id string, archived bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	dish, ok := d.byID[id]
	if !ok {
		return repositories.ErrDishNotFound
	}
	dish.Archived = archived
	d.byID[id] = dish
	return nil
}

// Dish returns a stored dish, for assertions.
func (d *Dishes) Dish(id string) (models.Dish, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dish, ok := d.byID[id]
	return dish, ok
}

// Feedback is an in-memory FeedbackRepository.
type Feedback struct {
	Items []models.Feedback
	Err   error
}

func (f *Feedback) ListFeedback(context.Context) ([]models.Feedback, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Items, nil
}

// Notifications is an in-memory NotificationRepository that records fan-outs.
type Notifications struct {
	mu        sync.Mutex
	Items     []models.Notification
	ListErr   error
	FanOutErr error
}

func (n *Notifications) ListNotifications(context.Context) ([]models.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ListErr != nil {
		return nil, n.ListErr
	}
	return append([]models.Notification(nil), n.Items...), nil
}

func (n *Notifications) FanOut(_ context.Context, tmpl models.Notification, userIDs []string) repositories.FanOutResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := repositories.FanOutResult{Recipients: len(userIDs)}
	if n.FanOutErr != nil {
		result.FailedBatches = 1
		result.Err = n.FanOutErr
		return result
	}
	for _, uid := range userIDs {
		notification := tmpl
		notification.ID = fmt.Sprintf("n-%d", len(n.Items)+1)
		notification.UserID = uid
		n.Items = append(n.Items, notification)
	}
	result.Written = len(userIDs)
	return result
}

// Users is an in-memory UserRepository.
type Users struct {
	mu      sync.Mutex
	byID    map[string]models.User
	Err     error
	SaveErr error
}

func NewUsers(users ...models.User) *Users {
	u := &Users{byID: make(map[string]models.User)}
	for _, user := range users {
		u.byID[user.ID] = user
	}
	return u
}

func (u *Users) ListUsers(context.Context) ([]models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	out := make([]models.User, 0, len(u.byID))
	for _, user := range u.byID {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (u *Users) CountUsers(ctx context.Context) (int, error) {
	users, err := u.ListUsers(ctx)
	return len(users), err
}

func (u *Users) UpdateUser(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.SaveErr != nil {
		return u.SaveErr
	}
	if _, ok := u.byID[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	u.byID[user.ID] = *user
	return nil
}

// User returns a stored user, for assertions.
func (u *Users) User(id string) (models.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[id]
	return user, ok
}
