package redis

import (
	"context"
	"net"
	"resort/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

func Options(node config.RedisNode) *goRedis.Options {
	return &goRedis.Options{
		Addr:     net.JoinHostPort(node.Host, node.Port),
		Password: node.Password,
		DB:       node.DB,
	}
}

// New connects to the primary node. The room locks depend on redis, so an
// unreachable node stops the process.
func New(cfg *config.Config) *goRedis.Client {
	node := cfg.Cache.Redis.Primary
	client := goRedis.NewClient(Options(node))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", client.Options().Addr).Msg("redis not reachable")
	}

	log.Info().Str("addr", client.Options().Addr).Int("db", node.DB).Msg("redis connected")

	return client
}
