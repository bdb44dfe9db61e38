package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"taskboard/domain"
	"taskboard/location"
)

const postBodyMaxSize = 1 << 20

// Register wires up all API routes on the provided Echo instance. The
// deduper may be nil, in which case intent idempotency checks are skipped.
func Register(e *echo.Echo, projector Projector, creator Creator, router Submitter, locations Locations, deduper Deduper, logger *log.Logger) {
	e.GET("/api/tasks", getTasks(projector, logger))
	e.POST("/api/tasks", postTasks(creator))
	e.POST("/api/intents", postIntents(router, deduper))
	e.GET("/api/locations", getLocations(locations))
	e.POST("/api/locations", postLocations(locations))
	e.PUT("/api/locations/:id/used", putLocationUsed(locations))
	e.GET("/healthz", healthz())
}

type tasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getTasks(projector Projector, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newTaskRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		cfg, parseErr := viewConfigFromQuery(c)
		if parseErr != nil {
			metrics.SetErrorStage("invalid_query")
			err = c.String(http.StatusBadRequest, parseErr.Error())
			return err
		}

		projectStart := time.Now()
		tasks := projector.Project(cfg.ScopeProjectID, cfg.Filter, cfg.SortBy, cfg.Order)
		metrics.ObserveProject(time.Since(projectStart))
		metrics.SetTasksReturned(len(tasks))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

// viewConfigFromQuery parses the projection parameters a view adapter polls
// with: projectId, assignee, status, priority, tags, dueFrom, dueTo, q,
// sortBy, order.
func viewConfigFromQuery(c echo.Context) (domain.ViewConfig, error) {
	cfg := domain.DefaultViewConfig()
	cfg.ScopeProjectID = c.QueryParam("projectId")
	cfg.Filter.Assignee = c.QueryParam("assignee")
	cfg.Filter.Search = c.QueryParam("q")

	for _, v := range splitParam(c.QueryParam("status")) {
		s := domain.Status(v)
		if !s.Valid() {
			return cfg, domain.Validationf("unknown status %q", v)
		}
		cfg.Filter.Statuses = append(cfg.Filter.Statuses, s)
	}
	for _, v := range splitParam(c.QueryParam("priority")) {
		p := domain.Priority(v)
		if !p.Valid() {
			return cfg, domain.Validationf("unknown priority %q", v)
		}
		cfg.Filter.Priorities = append(cfg.Filter.Priorities, p)
	}
	cfg.Filter.Tags = splitParam(c.QueryParam("tags"))

	if v := c.QueryParam("dueFrom"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return cfg, err
		}
		cfg.Filter.DueFrom = &d
	}
	if v := c.QueryParam("dueTo"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return cfg, err
		}
		cfg.Filter.DueTo = &d
	}

	if v := c.QueryParam("sortBy"); v != "" {
		key := domain.SortKey(v)
		if !key.Valid() {
			return cfg, domain.Validationf("unknown sort key %q", v)
		}
		cfg.SortBy = key
	}
	if v := c.QueryParam("order"); v != "" {
		order := domain.SortOrder(v)
		if !order.Valid() {
			return cfg, domain.Validationf("unknown sort order %q", v)
		}
		cfg.Order = order
	}
	return cfg, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func postTasks(creator Creator) echo.HandlerFunc {
	return func(c echo.Context) error {
		lr := io.LimitReader(c.Request().Body, postBodyMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		var draft domain.TaskDraft
		if err := dec.Decode(&draft); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		task, err := creator.Create(draft)
		if err != nil {
			return c.String(statusForError(err), err.Error())
		}
		return c.JSON(http.StatusCreated, task)
	}
}

// intentResult reports the outcome of one submitted intent.
type intentResult struct {
	IdempotencyKey string       `json:"idempotencyKey"`
	Status         string       `json:"status"` // applied | duplicate | rejected
	Task           *domain.Task `json:"task,omitempty"`
	Error          string       `json:"error,omitempty"`
}

func postIntents(router Submitter, deduper Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		lr := io.LimitReader(c.Request().Body, postBodyMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		envelopes := make([]intentEnvelope, 0, 4)
		if err := dec.Decode(&envelopes); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}

		results := make([]intentResult, 0, len(envelopes))
		for _, env := range envelopes {
			if env.IdempotencyKey == "" {
				env.IdempotencyKey = uuid.NewString()
			}
			res := intentResult{IdempotencyKey: env.IdempotencyKey}

			if deduper != nil {
				added, err := deduper.Add(ctx, env.IdempotencyKey)
				if err != nil {
					c.Logger().Errorf("deduper: %v", err)
				} else if !added {
					res.Status = "duplicate"
					results = append(results, res)
					continue
				}
			}

			intent, err := env.toIntent()
			if err == nil {
				var task domain.Task
				task, err = router.Submit(intent)
				if err == nil {
					res.Status = "applied"
					res.Task = &task
				}
			}
			if err != nil {
				res.Status = "rejected"
				res.Error = err.Error()
				if deduper != nil {
					if rerr := deduper.Remove(ctx, env.IdempotencyKey); rerr != nil {
						c.Logger().Errorf("deduper rollback: %v", rerr)
					}
				}
			}
			results = append(results, res)
		}
		return c.JSON(http.StatusOK, results)
	}
}

func getLocations(locations Locations) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, locations.List())
	}
}

func postLocations(locations Locations) echo.HandlerFunc {
	return func(c echo.Context) error {
		lr := io.LimitReader(c.Request().Body, postBodyMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		var draft location.Draft
		if err := dec.Decode(&draft); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		loc, err := locations.Create(draft)
		if err != nil {
			return c.String(statusForError(err), err.Error())
		}
		return c.JSON(http.StatusCreated, loc)
	}
}

func putLocationUsed(locations Locations) echo.HandlerFunc {
	return func(c echo.Context) error {
		used, err := strconv.ParseFloat(strings.TrimSpace(c.QueryParam("value")), 64)
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid used value")
		}
		loc, err := locations.SetUsed(c.Param("id"), used)
		if err != nil {
			return c.String(statusForError(err), err.Error())
		}
		return c.JSON(http.StatusOK, loc)
	}
}

// statusForError maps the domain error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
