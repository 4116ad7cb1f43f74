package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/internal/repositories"
	"github.com/tastytalk/admin-backend/internal/repositories/repotest"
	"github.com/tastytalk/admin-backend/pkg/logger"
)

var fixedNow = time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC)

type stubUploader struct {
	url      string
	err      error
	calls    int
	filename string
}

func (s *stubUploader) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	s.calls++
	s.filename = filename
	_, _ = io.ReadAll(r)
	return s.url, s.err
}

type catalogFixture struct {
	svc           *CatalogService
	dishes        *repotest.Dishes
	users         *repotest.Users
	notifications *repotest.Notifications
	uploader      *stubUploader
}

func newCatalogFixture(dishes ...models.Dish) *catalogFixture {
	f := &catalogFixture{
		dishes:        repotest.NewDishes(dishes...),
		users:         repotest.NewUsers(models.User{ID: "u1"}, models.User{ID: "u2"}, models.User{ID: "u3"}),
		notifications: &repotest.Notifications{},
		uploader:      &stubUploader{url: "https://res.cloudinary.com/demo/new.jpg"},
	}
	f.svc = NewCatalogService(f.dishes, f.users, f.notifications, f.uploader, nil, logger.Nop())
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func adobo() models.Dish {
	return models.Dish{
		ID:       "d1",
		Name:     "Adobo",
		Category: "Main",
		Servings: 4,
		ImageURL: "https://res.cloudinary.com/demo/old.jpg",
		Rating:   4.2,
	}
}

func adoboInput() models.DishInput {
	return models.DishInput{
		Name:     "Chicken Adobo",
		Category: "Main",
		Servings: 6,
		Duration: "1 hr",
		Source:   "Lola",
		Ingredients: []models.Ingredient{
			{Quantity: "1", Unit: "kg", Name: "chicken", Substitutes: []string{"pork"}},
		},
		Procedures: []string{"Marinate", "Simmer"},
	}
}

func TestUpdateDishWithoutImageKeepsURL(t *testing.T) {
	f := newCatalogFixture(adobo())

	result, err := f.svc.UpdateDish(context.Background(), "d1", adoboInput(), nil)
	require.NoError(t, err)

	dish, _ := f.dishes.Dish("d1")
	assert.Equal(t, "https://res.cloudinary.com/demo/old.jpg", dish.ImageURL)
	assert.Equal(t, "Chicken Adobo", dish.Name)
	assert.Equal(t, 6, dish.Servings)
	assert.Equal(t, 4.2, dish.Rating)
	assert.Zero(t, f.uploader.calls)
	assert.Empty(t, result.ImageURL)
}

func TestUpdateDishWithImageReplacesURL(t *testing.T) {
	f := newCatalogFixture(adobo())

	result, err := f.svc.UpdateDish(context.Background(), "d1", adoboInput(), &Image{Filename: "new.jpg", Body: strings.NewReader("img")})
	require.NoError(t, err)

	dish, _ := f.dishes.Dish("d1")
	assert.Equal(t, "https://res.cloudinary.com/demo/new.jpg", dish.ImageURL)
	assert.Equal(t, dish.ImageURL, result.ImageURL)
	assert.Equal(t, "new.jpg", f.uploader.filename)
}

func TestUpdateDishFansOutNotifications(t *testing.T) {
	f := newCatalogFixture(adobo())

	result, err := f.svc.UpdateDish(context.Background(), "d1", adoboInput(), nil)
	require.NoError(t, err)

	assert.True(t, result.Notified.OK())
	assert.Equal(t, 3, result.Notified.Written)
	require.Len(t, f.notifications.Items, 3)
	recipients := map[string]bool{}
	for _, n := range f.notifications.Items {
		recipients[n.UserID] = true
		assert.Equal(t, models.NotificationTitleDishUpdated, n.Title)
		assert.Equal(t, "A recipe you follow was updated: Chicken Adobo", n.Message)
		assert.Equal(t, "d1", n.DishID)
		assert.Equal(t, "Chicken Adobo", n.DishName)
		assert.Equal(t, fixedNow, n.Timestamp)
		assert.False(t, n.Read)
	}
	assert.Len(t, recipients, 3)
}

func TestUpdateDishSurvivesFanOutFailure(t *testing.T) {
	f := newCatalogFixture(adobo())
	f.notifications.FanOutErr = errors.New("batch commit failed")

	result, err := f.svc.UpdateDish(context.Background(), "d1", adoboInput(), nil)
	require.NoError(t, err)
	assert.False(t, result.Notified.OK())

	dish, _ := f.dishes.Dish("d1")
	assert.Equal(t, "Chicken Adobo", dish.Name)
}

func TestUpdateDishSurvivesUserListFailure(t *testing.T) {
	f := newCatalogFixture(adobo())
	f.users.Err = errors.New("rtdb unavailable")

	result, err := f.svc.UpdateDish(context.Background(), "d1", adoboInput(), nil)
	require.NoError(t, err)
	assert.Error(t, result.Notified.Err)
	assert.Empty(t, f.notifications.Items)
}

func TestUpdateDishUnknownIDSkipsUpload(t *testing.T) {
	f := newCatalogFixture(adobo())

	_, err := f.svc.UpdateDish(context.Background(), "missing", adoboInput(), &Image{Filename: "a.jpg", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, repositories.ErrDishNotFound)
	assert.Zero(t, f.uploader.calls)
	assert.Empty(t, f.notifications.Items)
}

func TestUpdateDishUploadFailure(t *testing.T) {
	f := newCatalogFixture(adobo())
	f.uploader.err = errors.New("cloudinary down")

	_, err := f.svc.UpdateDish(context.Background(), "d1", adoboInput(), &Image{Filename: "a.jpg", Body: strings.NewReader("x")})
	require.Error(t, err)

	dish, _ := f.dishes.Dish("d1")
	assert.Equal(t, "Adobo", dish.Name, "dish must not change when the upload fails")
	assert.Empty(t, f.notifications.Items)
}

func TestCreateDish(t *testing.T) {
	f := newCatalogFixture()

	result, err := f.svc.CreateDish(context.Background(), adoboInput(), &Image{Filename: "a.jpg", Body: strings.NewReader("x")})
	require.NoError(t, err)

	dish, ok := f.dishes.Dish(result.DishID)
	require.True(t, ok)
	assert.False(t, dish.Archived)
	assert.Zero(t, dish.Rating)
	assert.Equal(t, "https://res.cloudinary.com/demo/new.jpg", dish.ImageURL)
	require.Len(t, f.notifications.Items, 3)
	assert.Equal(t, models.NotificationTitleDishAdded, f.notifications.Items[0].Title)
	assert.Equal(t, "A new recipe is available: Chicken Adobo", f.notifications.Items[0].Message)
}

func TestArchiveThenListCatalog(t *testing.T) {
	soup := models.Dish{ID: "d2", Name: "Sinigang", Category: "Soup"}
	cake := models.Dish{ID: "d3", Name: "Bibingka", Category: "Dessert"}
	f := newCatalogFixture(adobo(), soup, cake)

	require.NoError(t, f.svc.Archive(context.Background(), "d1"))

	catalog, err := f.svc.ListCatalog(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bibingka", "Sinigang"}, dishNames(catalog.Dishes))
	assert.Equal(t, []string{"Adobo"}, dishNames(catalog.Archived))
	assert.Equal(t, []string{"Dessert", "Main", "Soup"}, catalog.Categories)

	require.NoError(t, f.svc.Unarchive(context.Background(), "d1"))
	catalog, err = f.svc.ListCatalog(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Adobo", "Bibingka", "Sinigang"}, dishNames(catalog.Dishes))
	assert.Empty(t, catalog.Archived)
}

func TestListCatalogCategoryFilterSkipsArchived(t *testing.T) {
	archivedSoup := models.Dish{ID: "d4", Name: "Tinola", Category: "Soup", Archived: true}
	soup := models.Dish{ID: "d2", Name: "Sinigang", Category: "Soup"}
	f := newCatalogFixture(adobo(), soup, archivedSoup)

	catalog, err := f.svc.ListCatalog(context.Background(), "Soup")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sinigang"}, dishNames(catalog.Dishes))
	assert.Equal(t, []string{"Tinola"}, dishNames(catalog.Archived))
	assert.Equal(t, "Soup", catalog.Selected)
}

func TestArchiveUnknownDish(t *testing.T) {
	f := newCatalogFixture()
	assert.ErrorIs(t, f.svc.Archive(context.Background(), "nope"), repositories.ErrDishNotFound)
}

func dishNames(dishes []models.Dish) []string {
	out := make([]string, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, d.Name)
	}
	return out
}
