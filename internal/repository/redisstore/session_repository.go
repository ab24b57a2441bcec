package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"genegpt-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "genegpt:session:"

// SessionRepository persists sessions in Redis so context survives process
// restarts and can be shared across instances.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func (r *SessionRepository) Save(session *store.Session) {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	r.rdb.Set(ctx, keyPrefix+session.ID, data, r.ttl)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := r.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	r.rdb.Del(ctx, keyPrefix+sessionID)
}
