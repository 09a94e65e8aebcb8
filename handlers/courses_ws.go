package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"learned_site/config"
	"learned_site/services"
	"learned_site/templates/pages"
	"learned_site/templates/partials"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	liveWriteTimeout = 10 * time.Second
	liveMaxMessage   = 4096
)

// liveMessage is the outgoing websocket message format
type liveMessage struct {
	Type      string               `json:"type"` // "update" or "error"
	SessionID string               `json:"session_id,omitempty"`
	Event     *services.FilterEvent `json:"event,omitempty"`
	State     *services.FilterState `json:"state,omitempty"`
	// Results is the rendered results section; Main is the rendered filter
	// form plus results, sent when the form inputs must follow the state
	Results string `json:"results,omitempty"`
	Main    string `json:"main,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// liveConn serializes writes; the session loop and the read loop both write
type liveConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (l *liveConn) send(msg liveMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return l.conn.WriteJSON(msg)
}

func newUpgrader(cfg *config.Config) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(cfg, r.Header.Get("Origin"))
		},
	}
}

// originAllowed accepts same-site requests, the configured app URL and any
// ALLOWED_ORIGINS entry
func originAllowed(cfg *config.Config, origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range cfg.AllowedOrigins {
		allowed = strings.TrimSuffix(strings.TrimSpace(allowed), "/")
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return strings.EqualFold(strings.TrimSuffix(cfg.AppURL, "/"), origin)
}

// CoursesLiveHandler runs a FilterSession over a websocket. The initial
// state comes from the query string, like the other course routes; each
// client message is a FilterEvent and every applied event is answered with
// re-rendered HTML.
func CoursesLiveHandler(c echo.Context) error {
	cfg := getConfig(c)
	upgrader := newUpgrader(cfg)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		c.Logger().Warnf("courses websocket upgrade: %v", err)
		return nil
	}
	defer conn.Close()
	conn.SetReadLimit(liveMaxMessage)

	live := &liveConn{conn: conn}
	catalog := getCatalog(c)

	// Rendering uses the request context for locale; the session gets its
	// own context so it stops with the socket
	renderCtx := c.Request().Context()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publish := func(update services.FilterUpdate) {
		msg, err := liveUpdateMessage(renderCtx, catalog, update)
		if err != nil {
			c.Logger().Errorf("courses websocket render: %v", err)
			return
		}
		if err := live.send(msg); err != nil {
			c.Logger().Warnf("courses websocket write: %v", err)
			cancel()
		}
	}

	session := services.NewFilterSession(buildCourseFilter(c), cfg.SearchDebounce, publish)
	defer session.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		session.Run(ctx)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Logger().Warnf("courses websocket read: %v", err)
			}
			break
		}

		var event services.FilterEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			replyError(c, live, session.ID(), "invalid message format")
			continue
		}

		if err := session.Dispatch(event); err != nil {
			replyError(c, live, session.ID(), err.Error())
			if err == services.ErrSessionClosed {
				break
			}
		}
	}

	cancel()
	<-done
	return nil
}

// replyError tells the client a message was rejected
func replyError(c echo.Context, live *liveConn, sessionID, reason string) {
	if err := live.send(liveMessage{Type: "error", SessionID: sessionID, Error: reason}); err != nil {
		c.Logger().Warnf("courses websocket write: %v", err)
	}
}

// liveUpdateMessage renders an update. The initial update and remove and
// clear events, which change form inputs the visitor did not touch, carry
// the whole courses block.
func liveUpdateMessage(ctx context.Context, catalog *services.Catalog, update services.FilterUpdate) (liveMessage, error) {
	listing := partials.CourseListing{
		State:   update.State,
		View:    update.View,
		Catalog: catalog,
		LiveURL: liveCoursesPath,
	}

	msg := liveMessage{
		Type:      "update",
		SessionID: update.SessionID,
		State:     &update.State,
		URL:       services.CoursesURL("/courses", update.State),
	}
	if update.Event.Type != "" {
		event := update.Event
		msg.Event = &event
	}

	var err error
	switch update.Event.Type {
	case "", services.EventRemove, services.EventClear:
		msg.Main, err = renderString(ctx, pages.CoursesMainPartial(listing))
	default:
		msg.Results, err = renderString(ctx, pages.CourseResultsPartial(listing))
	}
	return msg, err
}
