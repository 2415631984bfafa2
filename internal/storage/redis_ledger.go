package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyDonationCount  = "donations:count"
	keyDonationAmount = "donations:amount"
	keyDonationLog    = "donations:log"
)

type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(addr string) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		DialTimeout:     500 * time.Millisecond,
		ReadTimeout:     300 * time.Millisecond,
		WriteTimeout:    300 * time.Millisecond,
		MaxRetries:      2,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 50 * time.Millisecond,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisLedger{client: client}, nil
}

func (l *RedisLedger) RecordConfirmed(ctx context.Context, amount int64, confirmedAt time.Time) error {
	member := strconv.FormatInt(amount, 10) + "|" + confirmedAt.UTC().Format(time.RFC3339Nano)

	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, keyDonationCount)
		pipe.IncrBy(ctx, keyDonationAmount, amount)
		pipe.ZAdd(ctx, keyDonationLog, redis.Z{
			Score:  float64(confirmedAt.UTC().UnixNano()),
			Member: member,
		})
		return nil
	})
	return err
}

func (l *RedisLedger) Summary(ctx context.Context) (Summary, error) {
	pipe := l.client.Pipeline()
	countCmd := pipe.Get(ctx, keyDonationCount)
	amountCmd := pipe.Get(ctx, keyDonationAmount)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return Summary{}, err
	}

	count, _ := countCmd.Int64()
	amount, _ := amountCmd.Int64()

	return Summary{TotalDonations: count, TotalAmount: amount}, nil
}
