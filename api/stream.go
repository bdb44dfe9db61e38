package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// UpdateBroker fans the router's payload-free task-changed notification out
// to every open stream. Notify never blocks: a slow stream that already has
// a pending wakeup just coalesces.
type UpdateBroker struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewUpdateBroker returns an empty broker.
func NewUpdateBroker() *UpdateBroker {
	return &UpdateBroker{subs: make(map[chan struct{}]struct{})}
}

func (b *UpdateBroker) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *UpdateBroker) unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Notify wakes every subscribed stream. Wired to the mutation router's
// task-changed subscription.
func (b *UpdateBroker) Notify() {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	b.mu.Unlock()
}

// RegisterStream wires the SSE endpoint on the given Echo instance.
func RegisterStream(e *echo.Echo, projector Projector, broker *UpdateBroker) {
	e.GET("/stream", streamTasks(projector, broker))
}

// streamTasks serves the projection as a server-sent event stream: one event
// on connect, then one per task-changed notification. The client supplies
// the same query parameters as GET /api/tasks.
func streamTasks(projector Projector, broker *UpdateBroker) echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg, err := viewConfigFromQuery(c)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}

		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")
		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}

		ctx := c.Request().Context()
		ch := broker.subscribe()
		defer broker.unsubscribe(ch)
		for {
			tasks := projector.Project(cfg.ScopeProjectID, cfg.Filter, cfg.SortBy, cfg.Order)
			data, err := json.Marshal(tasksResponse{Tasks: tasks})
			if err != nil {
				c.Logger().Error(err)
				return err
			}
			// A write failure means the client went away; not an error.
			if _, err := fmt.Fprintf(c.Response(), "data: %s\n\n", data); err != nil {
				return nil
			}
			flusher.Flush()

			select {
			case <-ctx.Done():
				return nil
			case <-ch:
			}
		}
	}
}

// PublishUpdates returns a task-changed callback that publishes a marker on
// a redis channel so out-of-process collaborators can refresh their own
// read models.
func PublishUpdates(rc *redis.Client, channel string, logger *log.Logger) func() {
	return func() {
		if err := rc.Publish(context.Background(), channel, "tasks-updated").Err(); err != nil {
			logger.WithField("channel", channel).Warnf("publish update: %v", err)
		}
	}
}
