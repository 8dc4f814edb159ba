package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nkym/gms-backend/internal/logger"
	"github.com/nkym/gms-backend/internal/metrics"
)

var (
	// ErrTokenRequired is returned when a registration carries no token.
	ErrTokenRequired = errors.New("fcm token is required")
	// ErrTitleAndBodyRequired is returned when a dispatch lacks content.
	ErrTitleAndBodyRequired = errors.New("title and body are required")
)

// Service runs the notification pipeline: token registration, multicast
// dispatch with invalid-token cleanup, and the send history.
//
// It holds no mutable state of its own; concurrent dispatches may overlap
// freely. Deactivation is idempotent, so two dispatches scrubbing the same
// token are harmless.
type Service struct {
	tokens  TokenStore
	audit   AuditStore
	pusher  Pusher
	logger  *logger.Logger
	enabled bool
}

// NewService creates the notification service.
func NewService(tokens TokenStore, audit AuditStore, pusher Pusher, logger *logger.Logger, enabled bool) *Service {
	return &Service{
		tokens:  tokens,
		audit:   audit,
		pusher:  pusher,
		logger:  logger.WithComponent("notifications"),
		enabled: enabled,
	}
}

// RegisterToken upserts a device registration. An empty ownerID gets a
// generated anonymous identifier; repeated anonymous registrations from the
// same device are not deduplicated.
func (s *Service) RegisterToken(ctx context.Context, ownerID, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	if ownerID == "" {
		ownerID = "anon-" + uuid.NewString()
	}

	if err := s.tokens.Upsert(ctx, ownerID, token); err != nil {
		return fmt.Errorf("failed to register token: %w", err)
	}

	s.logger.WithContext(ctx).Info("token registered", slog.String("owner_id", ownerID))
	return nil
}

// Dispatch sends title/body (plus caller data, which overrides the built-in
// payload keys) to every active device, deactivates tokens the provider
// reports as permanently invalid, and appends one audit record.
//
// An empty audience short-circuits: no provider call and no audit record.
// Any later failure aborts the remaining steps; effects already committed
// are not rolled back.
func (s *Service) Dispatch(ctx context.Context, title, body string, extra map[string]string) (*DispatchReport, error) {
	if title == "" || body == "" {
		return nil, ErrTitleAndBodyRequired
	}

	log := s.logger.WithContext(ctx)

	if !s.enabled {
		log.Info("push notifications disabled, skipping dispatch", slog.String("title", title))
		return &DispatchReport{}, nil
	}

	regs, err := s.tokens.ListActive(ctx)
	if err != nil {
		metrics.DispatchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load active tokens: %w", err)
	}

	tokens := make([]string, 0, len(regs))
	for _, reg := range regs {
		if reg.Token != "" {
			tokens = append(tokens, reg.Token)
		}
	}

	if len(tokens) == 0 {
		log.Warn("no active tokens, skipping dispatch", slog.String("title", title))
		metrics.DispatchesTotal.WithLabelValues("empty").Inc()
		return &DispatchReport{}, nil
	}

	result, err := s.pusher.SendMulticast(ctx, tokens, Message{
		Title: title,
		Body:  body,
		Data:  buildPayload(title, body, extra),
	})
	if err != nil {
		metrics.DispatchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	invalid := collectInvalidTokens(tokens, result.Results)
	if len(invalid) > 0 {
		if err := s.tokens.DeactivateByTokens(ctx, invalid); err != nil {
			metrics.DispatchesTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("failed to clean up invalid tokens: %w", err)
		}
		metrics.TokensDeactivatedTotal.Add(float64(len(invalid)))
	}

	if err := s.audit.Append(ctx, SendRecord{
		Title:        title,
		Body:         body,
		SentAt:       time.Now(),
		TotalTokens:  len(tokens),
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
	}); err != nil {
		metrics.DispatchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to log notification: %w", err)
	}

	log.Info("notification dispatched",
		slog.String("title", title),
		slog.Int("tokens", len(tokens)),
		slog.Int("success", result.SuccessCount),
		slog.Int("failure", result.FailureCount),
		slog.Int("deactivated", len(invalid)))

	metrics.DispatchesTotal.WithLabelValues("ok").Inc()
	metrics.NotificationsSentTotal.WithLabelValues("success").Add(float64(result.SuccessCount))
	metrics.NotificationsSentTotal.WithLabelValues("failure").Add(float64(result.FailureCount))

	return &DispatchReport{
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
	}, nil
}

// ListSendHistory returns past send records, most recent first. limit <= 0
// returns everything.
func (s *Service) ListSendHistory(ctx context.Context, limit int) ([]SendRecord, error) {
	records, err := s.audit.ListDesc(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	return records, nil
}

// buildPayload merges caller-supplied data over the default keys.
// Caller values win.
func buildPayload(title, body string, extra map[string]string) map[string]string {
	payload := map[string]string{
		"title": title,
		"body":  body,
	}
	for k, v := range extra {
		payload[k] = v
	}
	return payload
}

// collectInvalidTokens returns the tokens whose outcome marks them
// permanently invalid. Results are positionally aligned with tokens.
func collectInvalidTokens(tokens []string, results []TokenResult) []string {
	var invalid []string
	for idx, res := range results {
		if idx >= len(tokens) {
			break
		}
		if !res.Success && permanentlyInvalid(res.Code) {
			invalid = append(invalid, tokens[idx])
		}
	}
	return invalid
}
