package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tastytalk/admin-backend/internal/insights"
	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/internal/repositories"
	"github.com/tastytalk/admin-backend/pkg/logger"
)

// ErrInvalidUser is returned when an edited user fails coercion.
var ErrInvalidUser = errors.New("invalid user")

// Dashboard is the dashboard page model
type Dashboard struct {
	UserCount int
	DishCount int
	Ratings   [7]insights.DayRating
	Activity  []insights.ActivityItem
}

// Labels returns the weekday labels of the ratings chart.
func (d *Dashboard) Labels() []string {
	out := make([]string, len(d.Ratings))
	for i, r := range d.Ratings {
		out[i] = r.Day
	}
	return out
}

// Values returns the averages of the ratings chart.
func (d *Dashboard) Values() []float64 {
	out := make([]float64, len(d.Ratings))
	for i, r := range d.Ratings {
		out[i] = r.Average
	}
	return out
}

// AdminService serves the dashboard and user management pages
type AdminService struct {
	users         repositories.UserRepository
	dishes        repositories.DishRepository
	feedback      repositories.FeedbackRepository
	notifications repositories.NotificationRepository
	log           *logger.Logger
	now           func() time.Time
}

func NewAdminService(
	users repositories.UserRepository,
	dishes repositories.DishRepository,
	feedback repositories.FeedbackRepository,
	notifications repositories.NotificationRepository,
	log *logger.Logger,
) *AdminService {
	return &AdminService{
		users:         users,
		dishes:        dishes,
		feedback:      feedback,
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

// Dashboard gathers the usage metrics. The activity feed is optional: when
// notifications cannot be read the feed is left empty.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	userCount, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	dishes, err := s.dishes.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	dishCount := 0
	for _, d := range dishes {
		if !d.Archived {
			dishCount++
		}
	}

	feedback, err := s.feedback.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		UserCount: userCount,
		DishCount: dishCount,
		Ratings:   insights.WeekdayRatings(feedback),
		Activity:  []insights.ActivityItem{},
	}

	notifications, err := s.notifications.ListNotifications(ctx)
	if err != nil {
		s.log.Warn(ctx, "recent activity unavailable", err)
		return dash, nil
	}
	dash.Activity = insights.RecentActivity(notifications, s.now())
	return dash, nil
}

// ListUsers returns users ordered by name with their cooking level.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := s.feedback.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}
	avgs := insights.UserAverages(feedback)

	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		avg := avgs[u.ID]
		out = append(out, models.UserSummary{
			User:          u,
			AverageRating: avg,
			CookingLevel:  insights.CookingLevel(avg),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].FullName), strings.ToLower(out[j].FullName)
		if a == b {
			return out[i].ID < out[j].ID
		}
		return a < b
	})
	return out, nil
}

// EditUser overwrites the editable fields of a user from an already validated form.
func (s *AdminService) EditUser(ctx context.Context, req models.EditUserRequest) error {
	age, err := strconv.Atoi(strings.TrimSpace(req.Age))
	if err != nil || age < 0 {
		return fmt.Errorf("%w: age %q", ErrInvalidUser, req.Age)
	}
	user := &models.User{
		ID:       strings.TrimSpace(req.UID),
		FullName: strings.TrimSpace(req.FullName),
		Birthday: strings.TrimSpace(req.Birthday),
		Age:      age,
		Gender:   strings.TrimSpace(req.Gender),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
	}
	return s.users.UpdateUser(ctx, user)
}
