package ports

import (
	"context"
	"time"
)

// TokenDenylist records refresh-token IDs revoked before their natural
// expiry. Entries only need to live as long as the token they block.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
