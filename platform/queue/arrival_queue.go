package queue

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"doc_processing_backend/pkg/logging"
	"doc_processing_backend/platform/redis"
)

// ArrivalQueue carries the storage keys of freshly uploaded pending objects.
// It stands in for the storage-side arrival notification: Upload pushes the
// key, the process worker pops it and runs the pipeline.
type ArrivalQueue struct {
	rdb   *goredis.Client
	queue string
}

func NewArrivalQueue(r *redis.Service, queueName string) *ArrivalQueue {
	return &ArrivalQueue{rdb: r.Rdb, queue: "queue:" + queueName}
}

func (q *ArrivalQueue) Publish(ctx context.Context, key string) error {
	return q.rdb.LPush(ctx, q.queue, key).Err()
}

// Listen blocks on the queue and hands each key to the handler, until ctx is
// cancelled. Handler errors are logged and the key is dropped; a duplicate
// delivery of the same key is safe because processing is idempotent.
func (q *ArrivalQueue) Listen(ctx context.Context, handler func(ctx context.Context, key string) error) {
	logging.Logger.Info("arrival queue listening", "queue", q.queue)
	for {
		if ctx.Err() != nil {
			return
		}
		res, err := q.rdb.BRPop(ctx, 5*time.Second, q.queue).Result()
		if err != nil {
			if errors.Is(err, goredis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			logging.Logger.Error("fail BRPop on arrival queue", "queue", q.queue, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		// BRPop returns [queue, value]
		if len(res) != 2 {
			continue
		}
		key := res[1]
		if err := handler(ctx, key); err != nil {
			logging.Logger.Error("fail processing arrival", "key", key, "error", err)
		}
	}
}
