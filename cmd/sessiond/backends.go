package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/sessionkit/pkg/async"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	mongoconn "github.com/dmitrymomot/sessionkit/pkg/mongo"
	"github.com/dmitrymomot/sessionkit/pkg/pg"
	redisconn "github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/session"
	sessionmongo "github.com/dmitrymomot/sessionkit/pkg/session/mongo"
	sessionpg "github.com/dmitrymomot/sessionkit/pkg/session/postgres"
	sessionredis "github.com/dmitrymomot/sessionkit/pkg/session/redis"
)

// backendSet carries a factory for every durable backend kind the
// topology references, plus readiness probes for the connections behind
// them.
type backendSet struct {
	factories map[string]session.BackendFactory
	readiness []func(context.Context) error
}

// connectBackends opens a connection for each backend kind the topology
// declares, skipping kinds no container uses so their configuration is
// never required. The connections are independent, so they open in
// parallel; the first unreachable one fails startup.
func connectBackends(ctx context.Context, topo *session.Topology, cfg appConfig, log *slog.Logger) (*backendSet, error) {
	needs := make(map[string]bool, len(topo.Containers))
	for _, spec := range topo.Containers {
		needs[spec.Backend] = true
	}

	var (
		redisFut *async.Future[*redis.Client]
		pgFut    *async.Future[*pgxpool.Pool]
		mongoFut *async.Future[*mongo.Database]
	)

	if needs["redis"] {
		var c redisconn.Config
		if err := config.Load(&c); err != nil {
			return nil, err
		}
		redisFut = async.Async(ctx, c, redisconn.Connect)
	}
	if needs["postgres"] {
		var c pg.Config
		if err := config.Load(&c); err != nil {
			return nil, err
		}
		pgFut = async.Async(ctx, c, pg.Connect)
	}
	if needs["mongo"] {
		var c mongoconn.Config
		if err := config.Load(&c); err != nil {
			return nil, err
		}
		mongoFut = async.Async(ctx, c, func(ctx context.Context, c mongoconn.Config) (*mongo.Database, error) {
			return mongoconn.NewWithDatabase(ctx, c, cfg.MongoDatabase)
		})
	}

	set := &backendSet{factories: make(map[string]session.BackendFactory)}

	if redisFut != nil {
		client, err := redisFut.Await()
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		log.InfoContext(ctx, "backend connected", logger.Backend("redis"))
		set.readiness = append(set.readiness, redisconn.Healthcheck(client))
		set.factories["redis"] = func(spec session.ContainerSpec) (session.Backend, error) {
			// Each container gets its own key prefix so several can
			// share one redis database without mixing bags.
			return sessionredis.New(client, sessionredis.WithKeyPrefix("sessionkit:"+spec.Name))
		}
	}

	if pgFut != nil {
		pool, err := pgFut.Await()
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		db := stdlib.OpenDBFromPool(pool)
		if err := sessionpg.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("postgres migrations: %w", err)
		}
		store, err := sessionpg.New(db)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "backend connected", logger.Backend("postgres"))
		set.readiness = append(set.readiness, pg.Healthcheck(pool))

		// The postgres schema holds a single session table, so only one
		// container can ride on it.
		var claimed string
		set.factories["postgres"] = func(spec session.ContainerSpec) (session.Backend, error) {
			if claimed != "" {
				return nil, fmt.Errorf("postgres backend already serves container %q, cannot also serve %q", claimed, spec.Name)
			}
			claimed = spec.Name
			return store, nil
		}
	}

	if mongoFut != nil {
		db, err := mongoFut.Await()
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		log.InfoContext(ctx, "backend connected", logger.Backend("mongo"))
		set.readiness = append(set.readiness, mongoconn.Healthcheck(db.Client()))
		set.factories["mongo"] = func(spec session.ContainerSpec) (session.Backend, error) {
			store, err := sessionmongo.New(db, sessionmongo.WithCollection("sessionkit_"+spec.Name))
			if err != nil {
				return nil, err
			}
			if err := store.EnsureIndexes(ctx); err != nil {
				return nil, err
			}
			return store, nil
		}
	}

	return set, nil
}
