package notifications

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/nkym/gms-backend/internal/logger"
)

const notificationLogsCollection = "NotificationLogs"

// AuditStore is the persistence contract for the append-only send log.
type AuditStore interface {
	Append(ctx context.Context, rec SendRecord) error
	ListDesc(ctx context.Context, limit int) ([]SendRecord, error)
}

// FirestoreAuditStore keeps send records in the NotificationLogs collection.
type FirestoreAuditStore struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreAuditStore creates a Firestore-backed audit store.
func NewFirestoreAuditStore(client *firestore.Client, logger *logger.Logger) *FirestoreAuditStore {
	return &FirestoreAuditStore{
		client: client,
		logger: logger.WithComponent("audit-store"),
	}
}

// Append writes one send record. Records are never updated or deleted.
func (s *FirestoreAuditStore) Append(ctx context.Context, rec SendRecord) error {
	_, _, err := s.client.Collection(notificationLogsCollection).Add(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to append notification log: %w", err)
	}
	return nil
}

// ListDesc returns send records ordered most recent first. limit <= 0
// fetches everything, matching the historical behavior of the logs
// endpoint.
func (s *FirestoreAuditStore) ListDesc(ctx context.Context, limit int) ([]SendRecord, error) {
	query := s.client.Collection(notificationLogsCollection).
		OrderBy("sentAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	records := make([]SendRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query notification logs: %w", err)
		}

		var rec SendRecord
		if err := doc.DataTo(&rec); err != nil {
			s.logger.Warn("skipping malformed notification log", "doc_id", doc.Ref.ID, "error", err.Error())
			continue
		}
		rec.ID = doc.Ref.ID
		records = append(records, rec)
	}

	return records, nil
}
