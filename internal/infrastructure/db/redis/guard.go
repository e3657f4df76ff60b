package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
)

const defaultGuardTTL = 30 * time.Second

// releaseScript deletes the lock only when it is still owned by the caller's
// token, so an expired lock re-acquired by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ApplyGuard serialises application submissions for a (job, professional)
// pair across API instances.
// Key format: apply:<job_id>:<professional_id>
type ApplyGuard struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewApplyGuard creates an ApplyGuard. The ttl bounds how long a crashed
// request can block retries; defaultGuardTTL is used when ttl <= 0.
func NewApplyGuard(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ApplyGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &ApplyGuard{client: client, ttl: ttl, log: log}
}

// Acquire takes the submission lock. A lock already held by another request
// is reported as domain.ErrSubmissionInProgress.
func (g *ApplyGuard) Acquire(ctx context.Context, jobID, professionalID string) (func(), error) {
	key := g.key(jobID, professionalID)
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("apply guard: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, domain.ErrSubmissionInProgress
	}

	return func() {
		// The request context may already be cancelled by the time we release.
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()
		if err := releaseScript.Run(relCtx, g.client, []string{key}, token).Err(); err != nil {
			g.log.Warn().Err(err).Str("key", key).Msg("apply guard release failed")
		}
	}, nil
}

func (g *ApplyGuard) key(jobID, professionalID string) string {
	return fmt.Sprintf("apply:%s:%s", jobID, professionalID)
}
