package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/multierr"

	"github.com/tastytalk/admin-backend/internal/models"
	"github.com/tastytalk/admin-backend/pkg/config"
	"github.com/tastytalk/admin-backend/pkg/metrics"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	FanOut(ctx context.Context, tmpl models.Notification, userIDs []string) FanOutResult
}

// FanOutResult reports how a fan-out went. A non-nil Err never means the
// fan-out was rolled back: batches committed before a failure stay written.
type FanOutResult struct {
	Recipients    int
	Written       int
	FailedBatches int
	Err           error
}

// OK reports whether every batch committed.
func (r FanOutResult) OK() bool {
	return r.Err == nil
}

type firestoreNotificationRepository struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
	batchSize  int
	metrics    *metrics.Admin
}

func NewFirestoreNotificationRepository(client *firestore.Client, batchSize int, m *metrics.Admin) NotificationRepository {
	if batchSize <= 0 || batchSize > config.MaxNotificationBatch {
		batchSize = config.MaxNotificationBatch
	}
	return &firestoreNotificationRepository{
		client:     client,
		collection: client.Collection("notifications"),
		batchSize:  batchSize,
		metrics:    m,
	}
}

func (r *firestoreNotificationRepository) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	docs, err := r.collection.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	notifications := make([]models.Notification, 0, len(docs))
	for _, doc := range docs {
		notifications = append(notifications, decodeNotification(doc.Ref.ID, doc.Data()))
	}
	return notifications, nil
}

// FanOut writes one copy of tmpl per user in sequential batch commits.
func (r *firestoreNotificationRepository) FanOut(ctx context.Context, tmpl models.Notification, userIDs []string) FanOutResult {
	return fanOut(ctx, userIDs, r.batchSize, func(ctx context.Context, ids []string) error {
		batch := r.client.Batch()
		for _, uid := range ids {
			n := tmpl
			n.UserID = uid
			batch.Create(r.collection.NewDoc(), n)
		}
		_, err := batch.Commit(ctx)
		r.metrics.FanoutBatch(tmpl.Title, len(ids), err)
		return err
	})
}

type commitFunc func(ctx context.Context, ids []string) error

// fanOut splits ids into chunks of at most size and commits them in order.
// A failed chunk does not stop the remaining ones.
func fanOut(ctx context.Context, ids []string, size int, commit commitFunc) FanOutResult {
	result := FanOutResult{Recipients: len(ids)}
	for i, chunk := range chunkIDs(ids, size) {
		if err := commit(ctx, chunk); err != nil {
			result.FailedBatches++
			result.Err = multierr.Append(result.Err, fmt.Errorf("notification batch %d: %w", i, err))
			continue
		}
		result.Written += len(chunk)
	}
	return result
}

func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = config.MaxNotificationBatch
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
