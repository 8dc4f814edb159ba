package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/nkym/gms-backend/internal/logger"
	"github.com/nkym/gms-backend/internal/notifications"
)

const announceTimeout = 30 * time.Second

// Announcer dispatches a push notification to all active devices.
type Announcer interface {
	Dispatch(ctx context.Context, title, body string, extra map[string]string) (*notifications.DispatchReport, error)
}

// Service manages event documents and announces new events to devices.
type Service struct {
	store     Store
	announcer Announcer
	logger    *logger.Logger
	announce  bool
}

// NewService creates the event service. announcer may be nil when event
// announcements are disabled.
func NewService(store Store, announcer Announcer, logger *logger.Logger, announce bool) *Service {
	return &Service{
		store:     store,
		announcer: announcer,
		logger:    logger.WithComponent("events"),
		announce:  announce && announcer != nil,
	}
}

// Create stores an event and, when enabled, announces it to all devices in
// the background. Announcement failures are logged, never surfaced to the
// creator.
func (s *Service) Create(ctx context.Context, event Event) (Event, error) {
	id, err := s.store.Create(ctx, event)
	if err != nil {
		return Event{}, err
	}
	event.ID = id

	if s.announce {
		go s.announceEvent(event)
	}

	return event, nil
}

// announceEvent runs detached from the request with its own deadline.
func (s *Service) announceEvent(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), announceTimeout)
	defer cancel()

	report, err := s.announcer.Dispatch(ctx,
		"New Ganesh Utsav Event! 🎉",
		event.Title+" - "+event.Date,
		map[string]string{
			"eventId": event.ID,
			"type":    "event",
			"action":  "view_event",
		})
	if err != nil {
		s.logger.Error("event announcement failed",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("event announced",
		slog.String("event_id", event.ID),
		slog.Int("success", report.SuccessCount),
		slog.Int("failure", report.FailureCount))
}

// List returns all events.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.store.List(ctx)
}

// Update replaces the fields of an existing event.
func (s *Service) Update(ctx context.Context, id string, event Event) error {
	return s.store.Update(ctx, id, event)
}

// Delete removes an event.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
