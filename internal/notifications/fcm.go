package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"firebase.google.com/go/v4/messaging"

	"github.com/nkym/gms-backend/internal/logger"
)

// Pusher is the provider contract for one multicast send. Results are
// positionally aligned with the input token list.
type Pusher interface {
	SendMulticast(ctx context.Context, tokens []string, msg Message) (*MulticastResult, error)
}

// MessagingClient is the subset of the Firebase Messaging API the pusher
// uses. *messaging.Client satisfies it; tests substitute a mock.
type MessagingClient interface {
	SendEachForMulticast(ctx context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMPusher sends multicast notifications through Firebase Cloud Messaging.
type FCMPusher struct {
	client MessagingClient
	logger *logger.Logger
}

// NewFCMPusher creates an FCM-backed pusher.
func NewFCMPusher(client MessagingClient, logger *logger.Logger) *FCMPusher {
	return &FCMPusher{
		client: client,
		logger: logger.WithComponent("fcm-pusher"),
	}
}

// SendMulticast issues one multicast request carrying every token and maps
// the SDK's per-token outcomes onto provider-neutral error codes.
func (p *FCMPusher) SendMulticast(ctx context.Context, tokens []string, msg Message) (*MulticastResult, error) {
	multicast := &messaging.MulticastMessage{
		Tokens: tokens,
		Data:   msg.Data,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: msg.Title,
				Body:  msg.Body,
				Icon:  "/favicon.ico",
			},
		},
	}

	br, err := p.client.SendEachForMulticast(ctx, multicast)
	if err != nil {
		return nil, fmt.Errorf("fcm multicast failed: %w", err)
	}

	result := &MulticastResult{
		SuccessCount: br.SuccessCount,
		FailureCount: br.FailureCount,
		Results:      make([]TokenResult, len(br.Responses)),
	}

	for idx, resp := range br.Responses {
		if resp.Success {
			result.Results[idx] = TokenResult{Success: true}
			continue
		}
		result.Results[idx] = TokenResult{Code: classifyError(resp.Error)}
	}

	p.logger.Info("multicast sent",
		slog.Int("tokens", len(tokens)),
		slog.Int("success", br.SuccessCount),
		slog.Int("failure", br.FailureCount))

	return result, nil
}

// classifyError maps a Firebase SDK per-token error to a stable code.
func classifyError(err error) string {
	switch {
	case err == nil:
		return CodeUnknown
	case messaging.IsInvalidArgument(err):
		return CodeInvalidToken
	case messaging.IsRegistrationTokenNotRegistered(err):
		return CodeUnregistered
	case messaging.IsUnavailable(err):
		return CodeUnavailable
	case messaging.IsQuotaExceeded(err):
		return CodeQuotaExceeded
	case messaging.IsInternal(err):
		return CodeInternal
	default:
		return CodeUnknown
	}
}
