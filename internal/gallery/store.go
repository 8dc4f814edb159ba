package gallery

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/nkym/gms-backend/internal/logger"
)

const galleryCollection = "Gallery"

// Image is one gallery entry. Src is the media host URL; the document only
// stores metadata.
type Image struct {
	ID       string `firestore:"-" json:"id,omitempty"`
	Src      string `firestore:"src" json:"src"`
	Alt      string `firestore:"alt" json:"alt"`
	Name     string `firestore:"name" json:"name"`
	Uploaded string `firestore:"uploaded" json:"uploaded"`
}

// ImageUpdate carries a partial metadata update; nil fields are untouched.
type ImageUpdate struct {
	Name     *string `json:"name"`
	Src      *string `json:"src"`
	Alt      *string `json:"alt"`
	Uploaded *string `json:"uploaded"`
}

// Store is the persistence contract for gallery metadata.
type Store interface {
	Create(ctx context.Context, image Image) (string, error)
	List(ctx context.Context) ([]Image, error)
	Update(ctx context.Context, id string, update ImageUpdate) error
	Delete(ctx context.Context, id string) error
}

// FirestoreStore keeps gallery metadata in the Gallery collection.
type FirestoreStore struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreStore creates a Firestore-backed gallery store.
func NewFirestoreStore(client *firestore.Client, logger *logger.Logger) *FirestoreStore {
	return &FirestoreStore{
		client: client,
		logger: logger.WithComponent("gallery-store"),
	}
}

// Create adds an image document and returns its generated ID.
func (s *FirestoreStore) Create(ctx context.Context, image Image) (string, error) {
	ref, _, err := s.client.Collection(galleryCollection).Add(ctx, image)
	if err != nil {
		return "", fmt.Errorf("failed to create gallery item: %w", err)
	}
	return ref.ID, nil
}

// List returns every gallery entry.
func (s *FirestoreStore) List(ctx context.Context) ([]Image, error) {
	iter := s.client.Collection(galleryCollection).Documents(ctx)
	defer iter.Stop()

	images := make([]Image, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list gallery items: %w", err)
		}

		var image Image
		if err := doc.DataTo(&image); err != nil {
			s.logger.Warn("skipping malformed gallery item", "doc_id", doc.Ref.ID, "error", err.Error())
			continue
		}
		image.ID = doc.Ref.ID
		images = append(images, image)
	}

	return images, nil
}

// Update applies only the supplied fields to an existing document.
func (s *FirestoreStore) Update(ctx context.Context, id string, update ImageUpdate) error {
	var updates []firestore.Update
	if update.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *update.Name})
	}
	if update.Src != nil {
		updates = append(updates, firestore.Update{Path: "src", Value: *update.Src})
	}
	if update.Alt != nil {
		updates = append(updates, firestore.Update{Path: "alt", Value: *update.Alt})
	}
	if update.Uploaded != nil {
		updates = append(updates, firestore.Update{Path: "uploaded", Value: *update.Uploaded})
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := s.client.Collection(galleryCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update gallery item %s: %w", id, err)
	}
	return nil
}

// Delete removes the metadata document. The media host object is retained.
func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.Collection(galleryCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item %s: %w", id, err)
	}
	return nil
}
