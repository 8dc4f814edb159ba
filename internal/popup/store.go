package popup

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/nkym/gms-backend/internal/logger"
)

const popupCollection = "popupContent"

// Content is one popup banner document.
type Content struct {
	ID        string    `firestore:"-" json:"id,omitempty"`
	MediaURL  string    `firestore:"mediaUrl" json:"mediaUrl"`
	MediaType string    `firestore:"mediaType" json:"mediaType"`
	IsEnabled bool      `firestore:"isEnabled" json:"isEnabled"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Store is the persistence contract for popup banners.
type Store interface {
	ListEnabled(ctx context.Context) ([]Content, error)
	Create(ctx context.Context, content Content) (string, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
}

// FirestoreStore keeps banners in the popupContent collection.
type FirestoreStore struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreStore creates a Firestore-backed popup store.
func NewFirestoreStore(client *firestore.Client, logger *logger.Logger) *FirestoreStore {
	return &FirestoreStore{
		client: client,
		logger: logger.WithComponent("popup-store"),
	}
}

// ListEnabled returns enabled banners, newest first.
func (s *FirestoreStore) ListEnabled(ctx context.Context) ([]Content, error) {
	iter := s.client.Collection(popupCollection).
		Where("isEnabled", "==", true).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	contents := make([]Content, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list popup content: %w", err)
		}

		var content Content
		if err := doc.DataTo(&content); err != nil {
			s.logger.Warn("skipping malformed popup content", "doc_id", doc.Ref.ID, "error", err.Error())
			continue
		}
		content.ID = doc.Ref.ID
		contents = append(contents, content)
	}

	return contents, nil
}

// Create adds a banner and returns its generated ID.
func (s *FirestoreStore) Create(ctx context.Context, content Content) (string, error) {
	content.CreatedAt = time.Now()
	ref, _, err := s.client.Collection(popupCollection).Add(ctx, content)
	if err != nil {
		return "", fmt.Errorf("failed to add popup content: %w", err)
	}
	return ref.ID, nil
}

// SetEnabled flips the visibility flag on an existing banner.
func (s *FirestoreStore) SetEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := s.client.Collection(popupCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isEnabled", Value: enabled},
	})
	if err != nil {
		return fmt.Errorf("failed to toggle popup content %s: %w", id, err)
	}
	return nil
}
