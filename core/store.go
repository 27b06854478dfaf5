package core

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var S Store

type Store struct {
	RedisConn *redis.Client
}

const (
	// PkProcessedRegistration marks chain-id:address pairs whose
	// autocompound round was already submitted.
	PkProcessedRegistration = "processed_registration"
)

// InitStore connects the redis store used for autocompound dedup. Called
// from main, not from init, so packages that never touch redis stay
// independent of it.
func InitStore(db *Database) {
	S = Store{
		RedisConn: initRedis(db),
	}
}

func initRedis(db *Database) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     db.RedisHost,
		Password: db.RedisPassword,
		DB:       db.RedisDb,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Could not connect to Redis: %v", err))
	}
	return rdb
}
