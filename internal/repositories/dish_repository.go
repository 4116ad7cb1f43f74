package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tastytalk/admin-backend/internal/models"
)

// DishRepository defines the interface for dish catalog operations
type DishRepository interface {
	ListDishes(ctx context.Context) ([]models.Dish, error)
	GetDish(ctx context.Context, id string) (*models.Dish, error)
	CreateDish(ctx context.Context, dish *models.Dish) (string, error)
	UpdateDish(ctx context.Context, id string, update models.DishUpdate) error
	SetArchived(ctx context.Context, id string, archived bool) error
}

// FirestoreDishRepository implements DishRepository on the Firestore "dishes" collection
type FirestoreDishRepository struct {
	collection *firestore.CollectionRef
}

// NewFirestoreDishRepository creates a new FirestoreDishRepository
func NewFirestoreDishRepository(client *firestore.Client) *FirestoreDishRepository {
	return &FirestoreDishRepository{collection: client.Collection("dishes")}
}

// ListDishes streams every dish, archived ones included
func (r *FirestoreDishRepository) ListDishes(ctx context.Context) ([]models.Dish, error) {
	docs, err := r.collection.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing dishes: %w", err)
	}
	dishes := make([]models.Dish, 0, len(docs))
	for _, doc := range docs {
		dishes = append(dishes, decodeDish(doc.Ref.ID, doc.Data()))
	}
	return dishes, nil
}

// GetDish retrieves a dish by document ID
func (r *FirestoreDishRepository) GetDish(ctx context.Context, id string) (*models.Dish, error) {
	doc, err := r.collection.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDishNotFound
		}
		return nil, fmt.Errorf("getting dish %s: %w", id, err)
	}
	dish := decodeDish(doc.Ref.ID, doc.Data())
	return &dish, nil
}

// CreateDish adds a new dish document and returns its generated ID
func (r *FirestoreDishRepository) CreateDish(ctx context.Context, dish *models.Dish) (string, error) {
	ref, _, err := r.collection.Add(ctx, dish)
	if err != nil {
		return "", fmt.Errorf("creating dish: %w", err)
	}
	dish.ID = ref.ID
	return ref.ID, nil
}

// UpdateDish applies a partial update; the image URL is only replaced when a new one is given
func (r *FirestoreDishRepository) UpdateDish(ctx context.Context, id string, update models.DishUpdate) error {
	_, err := r.collection.Doc(id).Update(ctx, dishUpdates(update))
	return mapDishError(id, err)
}

// SetArchived sets or clears the archived flag of a dish
func (r *FirestoreDishRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	_, err := r.collection.Doc(id).Update(ctx, []firestore.Update{{Path: "archived", Value: archived}})
	return mapDishError(id, err)
}

func dishUpdates(u models.DishUpdate) []firestore.Update {
	ingredients := u.Ingredients
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	procedures := u.Procedures
	if procedures == nil {
		procedures = []string{}
	}
	updates := []firestore.Update{
		{Path: "name", Value: u.Name},
		{Path: "category", Value: u.Category},
		{Path: "servings", Value: u.Servings},
		{Path: "duration", Value: u.Duration},
		{Path: "source", Value: u.Source},
		{Path: "ingredients", Value: ingredients},
		{Path: "procedures", Value: procedures},
	}
	if u.ImageURL != "" {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: u.ImageURL})
	}
	return updates
}

func mapDishError(id string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return ErrDishNotFound
	}
	return fmt.Errorf("updating dish %s: %w", id, err)
}
