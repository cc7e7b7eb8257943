package kv

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Options struct {
	Backend    string
	FileDir    string
	Redis      *redis.Client
	MongoURI   string
	MongoDB    string
	Collection string
}

// Open builds the configured backend. The returned close func releases
// whatever connection Open itself created.
func Open(ctx context.Context, opts Options) (Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(), noop, nil

	case BackendFile:
		store, err := NewFile(opts.FileDir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case BackendRedis:
		if opts.Redis == nil {
			return nil, nil, fmt.Errorf("kv: redis backend needs a redis client")
		}
		if err := opts.Redis.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("kv: redis ping: %w", err)
		}
		return NewRedis(opts.Redis, "saborify:"), noop, nil

	case BackendMongo:
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.MongoURI).SetServerAPIOptions(serverAPI))
		if err != nil {
			return nil, nil, fmt.Errorf("kv: mongo connect: %w", err)
		}
		if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("kv: mongo ping: %w", err)
		}
		log.Println("Pinged MongoDB, kv backend ready")
		coll := opts.Collection
		if coll == "" {
			coll = "kv"
		}
		return NewMongo(client.Database(opts.MongoDB).Collection(coll)), client.Disconnect, nil
	}
	return nil, nil, fmt.Errorf("kv: unknown backend %q", opts.Backend)
}
