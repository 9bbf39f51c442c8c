package session

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// RevocationList marks members whose outstanding tokens must be refused.
// Entries live as long as a token can, after which no valid token remains.
type RevocationList struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRevocationList(client *redisv9.Client, tokenLifetime time.Duration) *RevocationList {
	if tokenLifetime <= 0 {
		tokenLifetime = 2 * time.Hour
	}
	return &RevocationList{
		client: client,
		ttl:    tokenLifetime,
	}
}

func (l *RevocationList) RevokeMember(ctx context.Context, memberID uint) error {
	key := l.key(memberID)
	if err := l.client.Set(ctx, key, time.Now().Unix(), l.ttl).Err(); err != nil {
		return fmt.Errorf("redis set revocation failed: %w", err)
	}
	return nil
}

func (l *RevocationList) IsRevoked(ctx context.Context, memberID uint) (bool, error) {
	exists, err := l.client.Exists(ctx, l.key(memberID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check revocation failed: %w", err)
	}
	return exists > 0, nil
}

func (l *RevocationList) key(memberID uint) string {
	return fmt.Sprintf("board:member:revoked:%d", memberID)
}
