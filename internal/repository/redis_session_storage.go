package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"retail-mis-console/internal/model"

	red "github.com/redis/go-redis/v9"
)

const defaultRedisSessionPrefix = "mis:session"

const (
	fieldToken  = "token"
	fieldUser   = "user"
	fieldExpiry = "expiry"
)

// deleteIfToken drops the hash only while its token field still equals ARGV[1].
// A missing token field compares as the empty string.
var deleteIfToken = red.NewScript(`
local current = redis.call("HGET", KEYS[1], "token")
if not current then
	current = ""
end
if redis.call("EXISTS", KEYS[1]) == 1 and current == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisSessionStorage struct {
	client *red.Client
	prefix string
}

// NewRedisSessionStorage stores each scope as a hash with token, user and expiry fields.
// Keys carry a PEXPIREAT at the session expiry so Redis drops abandoned scopes.
func NewRedisSessionStorage(client *red.Client, keyPrefix string) SessionStorage {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultRedisSessionPrefix
	}
	return &redisSessionStorage{client: client, prefix: prefix}
}

func (s *redisSessionStorage) key(scope string) string {
	return s.prefix + ":" + scope
}

func (s *redisSessionStorage) Load(ctx context.Context, scope string) (*model.SessionRecord, error) {
	if scope == "" {
		return nil, ErrEmptyScope
	}

	fields, err := s.client.HGetAll(ctx, s.key(scope)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	token, okToken := fields[fieldToken]
	profile, okUser := fields[fieldUser]
	rawExpiry, okExpiry := fields[fieldExpiry]
	if !okToken || !okUser || !okExpiry {
		return nil, &MalformedRecordError{Scope: scope, Token: token, Reason: "missing fields"}
	}
	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return nil, &MalformedRecordError{Scope: scope, Token: token, Reason: fmt.Sprintf("expiry %q", rawExpiry)}
	}

	return &model.SessionRecord{
		Scope:     scope,
		Token:     token,
		Profile:   profile,
		ExpiresAt: expiry,
	}, nil
}

func (s *redisSessionStorage) Save(ctx context.Context, record *model.SessionRecord) error {
	if record == nil || record.Scope == "" {
		return ErrEmptyScope
	}
	key := s.key(record.Scope)

	_, err := s.client.TxPipelined(ctx, func(pipe red.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldToken, record.Token,
			fieldUser, record.Profile,
			fieldExpiry, strconv.FormatInt(record.ExpiresAt, 10),
		)
		pipe.PExpireAt(ctx, key, time.UnixMilli(record.ExpiresAt))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *redisSessionStorage) Delete(ctx context.Context, scope string) error {
	if scope == "" {
		return ErrEmptyScope
	}
	if err := s.client.Del(ctx, s.key(scope)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func (s *redisSessionStorage) DeleteIf(ctx context.Context, scope, token string) (bool, error) {
	if scope == "" {
		return false, ErrEmptyScope
	}
	removed, err := deleteIfToken.Run(ctx, s.client, []string{s.key(scope)}, token).Int()
	if err != nil {
		return false, fmt.Errorf("redis conditional delete session: %w", err)
	}
	return removed > 0, nil
}
