package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownFilterEvent = errors.New("unknown filter event")
	ErrSessionClosed      = errors.New("filter session closed")
)

// Filter event types accepted by FilterSession.Dispatch
const (
	EventCategory = "category"
	EventSearch   = "search"
	EventLocation = "location"
	EventFormat   = "format"
	EventRemove   = "remove"
	EventClear    = "clear"
	EventMore     = "more"
)

// FilterEvent is one UI gesture against the course filter
type FilterEvent struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// FilterUpdate is published after every applied event. Event is the zero
// value for the initial update.
type FilterUpdate struct {
	SessionID string      `json:"session_id"`
	Event     FilterEvent `json:"event"`
	State     FilterState `json:"state"`
	View      CourseView  `json:"view"`
}

// PublishFunc receives filter updates. It is always called from the
// session's event loop.
type PublishFunc func(FilterUpdate)

type queuedEvent struct {
	event     FilterEvent
	ticket    uint64
	debounced bool
}

// FilterSession binds UI events to a CourseFilter for a single page view.
// Events are applied one at a time on the Run goroutine; search input is
// debounced and only the latest pending search is ever applied.
type FilterSession struct {
	id        string
	filter    *CourseFilter
	debounce  *Debouncer
	publish   PublishFunc
	events    chan queuedEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewFilterSession creates a session around filter. Run must be called to
// start applying events.
func NewFilterSession(filter *CourseFilter, searchDebounce time.Duration, publish PublishFunc) *FilterSession {
	return &FilterSession{
		id:       uuid.NewString(),
		filter:   filter,
		debounce: NewDebouncer(searchDebounce),
		publish:  publish,
		events:   make(chan queuedEvent, 16),
		done:     make(chan struct{}),
	}
}

// ID returns the session identifier
func (s *FilterSession) ID() string {
	return s.id
}

// Run publishes the initial view and then applies events until ctx is
// cancelled or the session is closed.
func (s *FilterSession) Run(ctx context.Context) {
	s.publish(s.update(FilterEvent{}))

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-s.done:
			return
		case q := <-s.events:
			if q.debounced && !s.debounce.IsCurrent(q.ticket) {
				continue
			}
			s.apply(q.event)
			s.publish(s.update(q.event))
		}
	}
}

// Dispatch queues an event. Search events are held back until the input
// has been quiet for the debounce window.
func (s *FilterSession) Dispatch(event FilterEvent) error {
	switch event.Type {
	case EventCategory, EventSearch, EventLocation, EventFormat, EventRemove, EventClear, EventMore:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilterEvent, event.Type)
	}

	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	if event.Type == EventSearch {
		s.debounce.Trigger(func(ticket uint64) {
			s.enqueue(queuedEvent{event: event, ticket: ticket, debounced: true})
		})
		return nil
	}

	s.enqueue(queuedEvent{event: event})
	return nil
}

// Close stops the session and discards pending search input
func (s *FilterSession) Close() {
	s.closeOnce.Do(func() {
		s.debounce.Stop()
		close(s.done)
	})
}

func (s *FilterSession) enqueue(q queuedEvent) {
	select {
	case s.events <- q:
	case <-s.done:
	}
}

func (s *FilterSession) apply(event FilterEvent) {
	switch event.Type {
	case EventCategory:
		s.filter.SetCategory(event.Value)
	case EventSearch:
		s.filter.SetSearch(event.Value)
	case EventLocation:
		s.filter.SetLocation(event.Value)
	case EventFormat:
		s.filter.SetFormat(event.Value)
	case EventRemove:
		s.filter.RemoveFilter(FilterKey(event.Value))
	case EventClear:
		s.filter.ClearAll()
	case EventMore:
		s.filter.LoadMore()
	}
}

func (s *FilterSession) update(event FilterEvent) FilterUpdate {
	return FilterUpdate{
		SessionID: s.id,
		Event:     event,
		State:     s.filter.State(),
		View:      s.filter.View(),
	}
}
