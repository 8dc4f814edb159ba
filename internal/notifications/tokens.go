package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/nkym/gms-backend/internal/logger"
)

const userTokensCollection = "UserTokens"

// Firestore's "in" operator accepts at most this many values per query.
const tokenQueryChunkSize = 10

// TokenStore is the persistence contract for device registrations.
type TokenStore interface {
	Upsert(ctx context.Context, ownerID, token string) error
	ListActive(ctx context.Context) ([]DeviceRegistration, error)
	DeactivateByTokens(ctx context.Context, tokens []string) error
}

// FirestoreTokenStore stores device registrations in the UserTokens
// collection, one document per owner.
type FirestoreTokenStore struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreTokenStore creates a Firestore-backed token store.
func NewFirestoreTokenStore(client *firestore.Client, logger *logger.Logger) *FirestoreTokenStore {
	return &FirestoreTokenStore{
		client: client,
		logger: logger.WithComponent("token-store"),
	}
}

// Upsert writes a registration for ownerID, merging into any existing
// document so unrelated fields on the record survive.
func (s *FirestoreTokenStore) Upsert(ctx context.Context, ownerID, token string) error {
	_, err := s.client.Collection(userTokensCollection).Doc(ownerID).Set(ctx, map[string]interface{}{
		"fcmToken":  token,
		"isActive":  true,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to save token for owner %s: %w", ownerID, err)
	}
	return nil
}

// ListActive returns every registration currently marked active. The
// iterator pages through the collection transparently, so the full set is
// returned regardless of size.
func (s *FirestoreTokenStore) ListActive(ctx context.Context) ([]DeviceRegistration, error) {
	iter := s.client.Collection(userTokensCollection).
		Where("isActive", "==", true).
		Documents(ctx)
	defer iter.Stop()

	var regs []DeviceRegistration
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query active tokens: %w", err)
		}

		var reg DeviceRegistration
		if err := doc.DataTo(&reg); err != nil {
			// Corrupt rows are skipped rather than failing the whole scan.
			s.logger.Warn("skipping malformed registration",
				slog.String("doc_id", doc.Ref.ID),
				slog.String("error", err.Error()))
			continue
		}
		reg.OwnerID = doc.Ref.ID
		regs = append(regs, reg)
	}

	return regs, nil
}

// DeactivateByTokens marks inactive every registration whose token equals
// one of the given values. The token value, not the owner, is the match
// key: a bad token shared by several documents deactivates all of them.
// All updates from one call are committed in a single batch.
func (s *FirestoreTokenStore) DeactivateByTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	batch := s.client.Batch()
	matched := 0

	for start := 0; start < len(tokens); start += tokenQueryChunkSize {
		end := start + tokenQueryChunkSize
		if end > len(tokens) {
			end = len(tokens)
		}

		iter := s.client.Collection(userTokensCollection).
			Where("fcmToken", "in", tokens[start:end]).
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return fmt.Errorf("failed to look up invalid tokens: %w", err)
			}
			batch.Update(doc.Ref, []firestore.Update{
				{Path: "isActive", Value: false},
			})
			matched++
		}
		iter.Stop()
	}

	if matched == 0 {
		return nil
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to deactivate %d tokens: %w", matched, err)
	}

	s.logger.Info("deactivated invalid tokens",
		slog.Int("invalid_tokens", len(tokens)),
		slog.Int("documents_updated", matched))
	return nil
}
