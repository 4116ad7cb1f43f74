package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tastytalk/admin-backend/internal/insights"
	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/internal/repositories"
	"github.com/tastytalk/admin-backend/pkg/logger"
	"github.com/tastytalk/admin-backend/pkg/media"
	"github.com/tastytalk/admin-backend/pkg/metrics"
)

// Image is an uploaded image file waiting to be sent to the media host
type Image struct {
	Filename string
	Body     io.Reader
}

// DishWriteResult separates the outcome of the dish write (returned as the error)
// from the outcome of the notification fan-out that follows it.
type DishWriteResult struct {
	DishID   string
	ImageURL string
	Notified repositories.FanOutResult
}

// Catalog is the manage dish page model
type Catalog struct {
	Dishes     []models.Dish
	Archived   []models.Dish
	Categories []string
	Selected   string
}

// CatalogService runs dish catalog flows against the stores
type CatalogService struct {
	dishes        repositories.DishRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	uploader      media.Uploader
	metrics       *metrics.Admin
	log           *logger.Logger
	now           func() time.Time
}

func NewCatalogService(
	dishes repositories.DishRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	uploader media.Uploader,
	m *metrics.Admin,
	log *logger.Logger,
) *CatalogService {
	return &CatalogService{
		dishes:        dishes,
		users:         users,
		notifications: notifications,
		uploader:      uploader,
		metrics:       m,
		log:           log,
		now:           time.Now,
	}
}

// ListCatalog splits dishes into active and archived. The category filter only applies
// to active dishes.
func (s *CatalogService) ListCatalog(ctx context.Context, category string) (*Catalog, error) {
	all, err := s.dishes.ListDishes(ctx)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{
		Dishes:     []models.Dish{},
		Archived:   []models.Dish{},
		Categories: insights.Categories(all),
		Selected:   category,
	}
	for _, d := range all {
		switch {
		case d.Archived:
			catalog.Archived = append(catalog.Archived, d)
		case category == "" || d.Category == category:
			catalog.Dishes = append(catalog.Dishes, d)
		}
	}
	sortByName(catalog.Dishes)
	sortByName(catalog.Archived)
	return catalog, nil
}

// CreateDish stores a new active dish and announces it to every user.
func (s *CatalogService) CreateDish(ctx context.Context, in models.DishInput, img *Image) (DishWriteResult, error) {
	var result DishWriteResult

	dish := &models.Dish{
		Name:        in.Name,
		Category:    in.Category,
		Servings:    in.Servings,
		Duration:    in.Duration,
		Source:      in.Source,
		Ingredients: in.Ingredients,
		Procedures:  in.Procedures,
	}
	if img != nil {
		url, err := s.upload(ctx, img)
		if err != nil {
			s.metrics.DishWrite("create", err)
			return result, err
		}
		dish.ImageURL = url
	}

	id, err := s.dishes.CreateDish(ctx, dish)
	s.metrics.DishWrite("create", err)
	if err != nil {
		return result, err
	}
	result.DishID = id
	result.ImageURL = dish.ImageURL

	result.Notified = s.announce(ctx, models.Notification{
		Title:    models.NotificationTitleDishAdded,
		Message:  "A new recipe is available: " + dish.Name,
		DishID:   id,
		DishName: dish.Name,
	})
	return result, nil
}

// UpdateDish applies the form to an existing dish, replacing its image only when a new
// one is uploaded, then tells every user about the change. A failed fan-out is reported
// in the result and never turns into an error.
func (s *CatalogService) UpdateDish(ctx context.Context, id string, in models.DishInput, img *Image) (DishWriteResult, error) {
	result := DishWriteResult{DishID: id}
	update := models.DishUpdate{DishInput: in}

	if img != nil {
		// avoid orphaned uploads for unknown dishes
		if _, err := s.dishes.GetDish(ctx, id); err != nil {
			s.metrics.DishWrite("update", err)
			return result, err
		}
		url, err := s.upload(ctx, img)
		if err != nil {
			s.metrics.DishWrite("update", err)
			return result, err
		}
		update.ImageURL = url
		result.ImageURL = url
	}

	err := s.dishes.UpdateDish(ctx, id, update)
	s.metrics.DishWrite("update", err)
	if err != nil {
		return result, err
	}

	result.Notified = s.announce(ctx, models.Notification{
		Title:    models.NotificationTitleDishUpdated,
		Message:  "A recipe you follow was updated: " + in.Name,
		DishID:   id,
		DishName: in.Name,
	})
	return result, nil
}

func (s *CatalogService) Archive(ctx context.Context, id string) error {
	err := s.dishes.SetArchived(ctx, id, true)
	s.metrics.DishWrite("archive", err)
	return err
}

func (s *CatalogService) Unarchive(ctx context.Context, id string) error {
	err := s.dishes.SetArchived(ctx, id, false)
	s.metrics.DishWrite("unarchive", err)
	return err
}

func (s *CatalogService) upload(ctx context.Context, img *Image) (string, error) {
	url, err := s.uploader.Upload(ctx, img.Filename, img.Body)
	if err != nil {
		return "", fmt.Errorf("uploading dish image: %w", err)
	}
	return url, nil
}

// announce writes one notification per known user. Failures are logged only.
func (s *CatalogService) announce(ctx context.Context, tmpl models.Notification) repositories.FanOutResult {
	ctx = s.log.WithField(ctx, "dish_id", tmpl.DishID)

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.log.Warn(ctx, "notification fan-out skipped: listing users failed", err)
		return repositories.FanOutResult{Err: err}
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	tmpl.Timestamp = s.now()
	tmpl.Read = false
	result := s.notifications.FanOut(ctx, tmpl, ids)
	if !result.OK() {
		s.log.Warn(ctx, fmt.Sprintf("notification fan-out incomplete: %d of %d written", result.Written, result.Recipients), result.Err)
		return result
	}
	s.log.Info(ctx, fmt.Sprintf("sent %q notification to %d users", tmpl.Title, result.Written))
	return result
}

func sortByName(dishes []models.Dish) {
	sort.SliceStable(dishes, func(i, j int) bool { return dishes[i].Name < dishes[j].Name })
}
