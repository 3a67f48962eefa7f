package repository

import (
	"aws_quiz_backend/internal/model"
	"aws_quiz_backend/internal/util"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "quiz:session:"

// RedisSessionRepository keeps quiz sessions in redis with a key TTL, so a
// run survives process restarts and expires with the browser session.
type RedisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session model.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *RedisSessionRepository) Put(ctx context.Context, session *model.QuizSession) error {
	session.Version = 1
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(session.ID), data, r.ttl).Err()
}

// Update is an optimistic write: WATCH the key, verify the stored version
// still matches the caller's snapshot, then swap in the new state. A
// concurrent writer aborts the transaction and surfaces as a conflict.
func (r *RedisSessionRepository) Update(ctx context.Context, session *model.QuizSession) error {
	key := sessionKey(session.ID)

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return util.ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		var stored model.QuizSession
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		if stored.Version != session.Version {
			return util.ErrVersionConflict
		}

		session.Version++
		next, err := json.Marshal(session)
		if err != nil {
			session.Version--
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, r.ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return util.ErrVersionConflict
	}
	return err
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}
