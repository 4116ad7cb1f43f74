package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/tastytalk/admin-backend/internal/models"
)

// FeedbackRepository reads user feedback ratings
type FeedbackRepository interface {
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
}

type firestoreFeedbackRepository struct {
	collection *firestore.CollectionRef
}

func NewFirestoreFeedbackRepository(client *firestore.Client) FeedbackRepository {
	return &firestoreFeedbackRepository{collection: client.Collection("feedback")}
}

func (r *firestoreFeedbackRepository) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	docs, err := r.collection.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	feedback := make([]models.Feedback, 0, len(docs))
	for _, doc := range docs {
		feedback = append(feedback, decodeFeedback(doc.Data()))
	}
	return feedback, nil
}
