package bench

import (
	"context"
	"encoding/json"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/benz9527/xlinear/lib/infra"
	"github.com/benz9527/xlinear/xlog"
)

// DefaultRedisKey is the list the results are pushed onto.
const DefaultRedisKey = "xlinear:bench:results"

var _ Sink = (*RedisSink)(nil)

// RedisSink pushes every result as a JSON document onto a redis list.
type RedisSink struct {
	client redisv9.UniversalClient
	key    string
	owned  bool
}

// NewRedisSink connects to addr. The client logs through logger.
func NewRedisSink(addr string, logger xlog.XLogger) *RedisSink {
	redisv9.SetLogger(xlog.NewGoRedisXLogger(logger))
	client := redisv9.NewClient(&redisv9.Options{
		Addr: addr,
		DB:   0,
	})
	return &RedisSink{client: client, key: DefaultRedisKey, owned: true}
}

// NewRedisSinkWithClient writes through client onto key. The client is
// not closed by the sink.
func NewRedisSinkWithClient(client redisv9.UniversalClient, key string) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key}
}

func (s *RedisSink) Write(ctx context.Context, results []Result) error {
	if s.client == nil {
		return ErrSinkClosed
	}
	if len(results) == 0 {
		return nil
	}
	docs := make([]any, 0, len(results))
	for _, res := range results {
		doc, err := json.Marshal(res)
		if err != nil {
			return infra.WrapErrorStackWithMessage(err, "[bench] encode result")
		}
		docs = append(docs, doc)
	}
	if err := s.client.RPush(ctx, s.key, docs...).Err(); err != nil {
		return infra.WrapErrorStackWithMessage(err, "[bench] redis push "+s.key)
	}
	return nil
}

func (s *RedisSink) Close() error {
	if s.client == nil {
		return nil
	}
	client := s.client
	s.client = nil
	if !s.owned {
		return nil
	}
	return client.Close()
}
