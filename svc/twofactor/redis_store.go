package twofactor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vzoverflow/vzoverflow/pkg/clock"
)

// RedisStore is a cache-style CodeStore. Only the latest code per
// (user, purpose) is kept: issuing a replacement overwrites the previous one,
// which already models "only the most recent code is authoritative".
// Consumed and invalidated codes are deleted, and Redis TTLs take care of
// expiry, so unlike PGStore there is no audit trail.
type RedisStore struct {
	client *redis.Client
	clk    clock.Clock
}

// NewRedisStore creates a Redis-backed code store.
func NewRedisStore(client *redis.Client, clk clock.Clock) *RedisStore {
	if clk == nil {
		clk = clock.System()
	}
	return &RedisStore{client: client, clk: clk}
}

// ErrRedisPayloadMalformed reports an unexpected value at a code key.
var ErrRedisPayloadMalformed = errors.New("malformed one-time code payload in redis")

func codeKey(userID uuid.UUID, purpose Purpose) string {
	return fmt.Sprintf("otp:%s:%s", userID, purpose)
}

func idKey(id uuid.UUID) string {
	return "otp:id:" + id.String()
}

// payload is "id|userID|purpose|code|expiresAtUnix". The id prefix lets the
// consume script compare-and-delete without deserializing in Lua.
func encodePayload(c *OneTimeCode) string {
	return strings.Join([]string{
		c.ID.String(),
		c.UserID.String(),
		string(c.Purpose),
		c.Code,
		strconv.FormatInt(c.ExpiresAt.Unix(), 10),
	}, "|")
}

func decodePayload(raw string) (*OneTimeCode, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 5 {
		return nil, ErrRedisPayloadMalformed
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, errors.Join(ErrRedisPayloadMalformed, err)
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, errors.Join(ErrRedisPayloadMalformed, err)
	}
	expires, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return nil, errors.Join(ErrRedisPayloadMalformed, err)
	}

	return &OneTimeCode{
		ID:        id,
		UserID:    userID,
		Purpose:   Purpose(parts[2]),
		Code:      parts[3],
		ExpiresAt: time.Unix(expires, 0),
	}, nil
}

// consumeScript deletes the code addressed by an id index entry, but only if
// the primary key still holds that exact id. Running it as a script makes the
// check-then-delete atomic: of concurrent consumers exactly one gets 1 back.
//
// KEYS[1] = id index key, ARGV[1] = code id.
var consumeScript = redis.NewScript(`
local pk = redis.call('GET', KEYS[1])
if not pk then return 0 end
redis.call('DEL', KEYS[1])
local payload = redis.call('GET', pk)
if not payload then return 0 end
if string.sub(payload, 1, string.len(ARGV[1])) == ARGV[1] then
	redis.call('DEL', pk)
	return 1
end
return 0
`)

// CreateCode implements CodeStore.
func (s *RedisStore) CreateCode(ctx context.Context, code *OneTimeCode) error {
	ttl := code.ExpiresAt.Sub(s.clk.Now())
	if ttl <= 0 {
		// Born expired; nothing to store.
		return nil
	}

	pk := codeKey(code.UserID, code.Purpose)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, pk, encodePayload(code), ttl)
	pipe.Set(ctx, idKey(code.ID), pk, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// LatestActiveCode implements CodeStore.
func (s *RedisStore) LatestActiveCode(ctx context.Context, userID uuid.UUID, purpose Purpose, now time.Time) (*OneTimeCode, error) {
	raw, err := s.client.Get(ctx, codeKey(userID, purpose)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}

	code, err := decodePayload(raw)
	if err != nil {
		return nil, err
	}
	// The TTL normally handles expiry; the explicit check matters when the
	// caller's clock is ahead of Redis.
	if code.ExpiresAt.Before(now) {
		return nil, ErrCodeNotFound
	}

	return code, nil
}

// ConsumeCode implements CodeStore.
func (s *RedisStore) ConsumeCode(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{idKey(id)}, id.String()).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// InvalidateCodes implements CodeStore.
func (s *RedisStore) InvalidateCodes(ctx context.Context, userID uuid.UUID, purpose Purpose) error {
	// The orphaned id index entry expires on its own; without the primary
	// key the consume script treats it as already used.
	return s.client.Del(ctx, codeKey(userID, purpose)).Err()
}
