package events

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/nkym/gms-backend/internal/logger"
)

const eventsCollection = "Events"

// Event is one community event document.
type Event struct {
	ID          string `firestore:"-" json:"id,omitempty"`
	Title       string `firestore:"title" json:"title"`
	Date        string `firestore:"date" json:"date"`
	Time        string `firestore:"time" json:"time"`
	Description string `firestore:"description" json:"description"`
	Location    string `firestore:"location" json:"location"`
}

// Store is the persistence contract for events.
type Store interface {
	Create(ctx context.Context, event Event) (string, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id string, event Event) error
	Delete(ctx context.Context, id string) error
}

// FirestoreStore keeps events in the Events collection.
type FirestoreStore struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreStore creates a Firestore-backed event store.
func NewFirestoreStore(client *firestore.Client, logger *logger.Logger) *FirestoreStore {
	return &FirestoreStore{
		client: client,
		logger: logger.WithComponent("event-store"),
	}
}

// Create adds an event and returns its generated document ID.
func (s *FirestoreStore) Create(ctx context.Context, event Event) (string, error) {
	ref, _, err := s.client.Collection(eventsCollection).Add(ctx, event)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return ref.ID, nil
}

// List returns every event.
func (s *FirestoreStore) List(ctx context.Context) ([]Event, error) {
	iter := s.client.Collection(eventsCollection).Documents(ctx)
	defer iter.Stop()

	events := make([]Event, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		var event Event
		if err := doc.DataTo(&event); err != nil {
			s.logger.Warn("skipping malformed event", "doc_id", doc.Ref.ID, "error", err.Error())
			continue
		}
		event.ID = doc.Ref.ID
		events = append(events, event)
	}

	return events, nil
}

// Update replaces the event fields on an existing document.
func (s *FirestoreStore) Update(ctx context.Context, id string, event Event) error {
	_, err := s.client.Collection(eventsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "title", Value: event.Title},
		{Path: "date", Value: event.Date},
		{Path: "time", Value: event.Time},
		{Path: "description", Value: event.Description},
		{Path: "location", Value: event.Location},
	})
	if err != nil {
		return fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return nil
}

// Delete removes an event document.
func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.Collection(eventsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}
