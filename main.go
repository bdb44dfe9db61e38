package main

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"taskboard/api"
	"taskboard/domain"
	"taskboard/location"
	"taskboard/mutation"
	"taskboard/storage"
	"taskboard/view"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.New()

	store := storage.NewTaskStore()

	var snapshot *storage.Snapshot
	if path := os.Getenv("SNAPSHOT_PATH"); path != "" {
		var err error
		snapshot, err = storage.OpenSnapshot(path)
		if err != nil {
			log.Fatalf("snapshot: %v", err)
		}
		tasks, err := snapshot.Load(context.Background())
		if err != nil {
			log.Fatalf("snapshot load: %v", err)
		}
		store.Load(tasks)
		logger.WithField("tasks", len(tasks)).Info("snapshot restored")
	}

	router := mutation.NewRouter(store, logger)
	locations := location.NewRegistry()

	var rc *redis.Client
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		redisOpts, err := redis.ParseURL(redisConn)
		if err != nil {
			parts := strings.Split(redisConn, ",")
			redisOpts = &redis.Options{Addr: parts[0]}
			for _, p := range parts[1:] {
				kv := strings.SplitN(p, "=", 2)
				if len(kv) != 2 {
					continue
				}
				switch strings.ToLower(kv[0]) {
				case "password":
					redisOpts.Password = kv[1]
				case "ssl":
					if strings.ToLower(kv[1]) == "true" {
						redisOpts.TLSConfig = &tls.Config{}
					}
				}
			}
		}
		rc = redis.NewClient(redisOpts)
	}

	var deduper api.Deduper
	var source view.Source = store
	var cache *storage.Cache
	if rc != nil {
		ttl := 24 * time.Hour
		if v := os.Getenv("DEDUPER_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid DEDUPER_TTL: %v", err)
			}
			ttl = d
		}
		deduper = api.NewRedisDeduper(rc, ttl)

		cacheTTL := time.Minute
		if v := os.Getenv("CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid CACHE_TTL: %v", err)
			}
			cacheTTL = d
		}
		cache = storage.NewCache(store, rc, cacheTTL)
		router.Subscribe(func() { cache.Evict(context.Background()) })
		source = cache

		if channel := os.Getenv("UPDATES_CHANNEL"); channel != "" {
			router.Subscribe(api.PublishUpdates(rc, channel, logger))
		}
	}
	projector := view.NewProjector(source)

	broker := api.NewUpdateBroker()
	router.Subscribe(broker.Notify)

	if snapshot != nil {
		// Snapshot writes happen off the mutation path; the in-memory store
		// stays the source of truth.
		router.Subscribe(func() {
			tasks := store.GetAll()
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := snapshot.Save(ctx, tasks); err != nil {
					logger.Warnf("snapshot save: %v", err)
				}
			}()
		})
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	var creator api.Creator = store
	if cache != nil {
		creator = evictingCreator{store: store, cache: cache}
	}

	api.Register(e, projector, creator, router, locations, deduper, logger)
	api.RegisterStream(e, projector, broker)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		listenAddr = val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}

// evictingCreator drops the cached projection snapshot after a successful
// create, since creation bypasses the mutation router's eviction hook.
type evictingCreator struct {
	store *storage.TaskStore
	cache *storage.Cache
}

func (c evictingCreator) Create(draft domain.TaskDraft) (domain.Task, error) {
	task, err := c.store.Create(draft)
	if err == nil {
		c.cache.Evict(context.Background())
	}
	return task, err
}
