package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkym/gms-backend/internal/logger"
	"github.com/nkym/gms-backend/internal/notifications"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

type fakeStore struct {
	events    []Event
	createErr error
	updated   map[string]Event
	deleted   []string
}

func newFakeStore(events ...Event) *fakeStore {
	return &fakeStore{
		events:  events,
		updated: make(map[string]Event),
	}
}

func (f *fakeStore) Create(ctx context.Context, event Event) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	event.ID = "evt-1"
	f.events = append(f.events, event)
	return event.ID, nil
}

func (f *fakeStore) List(ctx context.Context) ([]Event, error) {
	return f.events, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, event Event) error {
	f.updated[id] = event
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAnnouncer struct {
	calls chan announcement
	err   error
}

type announcement struct {
	title string
	body  string
	extra map[string]string
}

func newFakeAnnouncer() *fakeAnnouncer {
	return &fakeAnnouncer{calls: make(chan announcement, 1)}
}

func (f *fakeAnnouncer) Dispatch(ctx context.Context, title, body string, extra map[string]string) (*notifications.DispatchReport, error) {
	f.calls <- announcement{title: title, body: body, extra: extra}
	if f.err != nil {
		return nil, f.err
	}
	return &notifications.DispatchReport{SuccessCount: 1}, nil
}

func TestCreateAnnouncesEvent(t *testing.T) {
	store := newFakeStore()
	announcer := newFakeAnnouncer()
	svc := NewService(store, announcer, newTestLogger(), true)

	event, err := svc.Create(context.Background(), Event{Title: "Aarti", Date: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", event.ID)

	select {
	case call := <-announcer.calls:
		assert.Contains(t, call.body, "Aarti")
		assert.Equal(t, "evt-1", call.extra["eventId"])
		assert.Equal(t, "event", call.extra["type"])
	case <-time.After(time.Second):
		t.Fatal("expected an event announcement")
	}
}

func TestCreateSucceedsWhenAnnouncementFails(t *testing.T) {
	store := newFakeStore()
	announcer := newFakeAnnouncer()
	announcer.err = errors.New("provider down")
	svc := NewService(store, announcer, newTestLogger(), true)

	_, err := svc.Create(context.Background(), Event{Title: "Aarti", Date: "2026-09-01"})
	require.NoError(t, err, "announcement failures never surface to the creator")

	select {
	case <-announcer.calls:
	case <-time.After(time.Second):
		t.Fatal("expected an announcement attempt")
	}
}

func TestCreateSkipsAnnouncementWhenDisabled(t *testing.T) {
	store := newFakeStore()
	announcer := newFakeAnnouncer()
	svc := NewService(store, announcer, newTestLogger(), false)

	_, err := svc.Create(context.Background(), Event{Title: "Aarti", Date: "2026-09-01"})
	require.NoError(t, err)

	select {
	case <-announcer.calls:
		t.Fatal("no announcement expected when disabled")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCreateStoreErrorSurfaces(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("store unreachable")
	svc := NewService(store, nil, newTestLogger(), true)

	_, err := svc.Create(context.Background(), Event{Title: "Aarti"})
	require.Error(t, err)
}
