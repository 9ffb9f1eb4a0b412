package helpers

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionTTL is used for sessions whose tokens never expire.
const DefaultSessionTTL = 24 * time.Hour

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Session is the server-side record backing an issued access token.
type Session struct {
	UserID    int64
	Username  string
	SessionID string
	CreatedAt time.Time
}

// SessionKey returns the Redis key holding the session hash of a user.
func SessionKey(userID int64) string {
	return "user:session:" + strconv.FormatInt(userID, 10)
}

// SaveSession stores s as a hash and replaces any previous session of the user.
func SaveSession(ctx context.Context, rdb *redis.Client, s Session, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	key := SessionKey(s.UserID)
	pipe := rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    strconv.FormatInt(s.UserID, 10),
		"username":   s.Username,
		"sid":        s.SessionID,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// LoadSession returns the stored session, or found=false when there is none.
func LoadSession(ctx context.Context, rdb *redis.Client, userID int64) (Session, bool, error) {
	data, err := rdb.HGetAll(ctx, SessionKey(userID)).Result()
	if err != nil {
		return Session{}, false, err
	}
	if len(data) == 0 {
		return Session{}, false, nil
	}
	s := Session{UserID: userID, Username: data["username"], SessionID: data["sid"]}
	if ts, err := time.Parse(time.RFC3339, data["created_at"]); err == nil {
		s.CreatedAt = ts
	}
	return s, true, nil
}

// DeleteSession revokes the user's current session.
func DeleteSession(ctx context.Context, rdb *redis.Client, userID int64) error {
	return rdb.Del(ctx, SessionKey(userID)).Err()
}
