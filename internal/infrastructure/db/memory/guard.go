package memory

import (
	"context"
	"sync"

	"github.com/revit/marketplace/internal/core/domain"
)

// LocalGuard is a process-local ports.ApplyGuard used when Redis is not
// configured. It only serialises submissions handled by this instance.
type LocalGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, jobID, professionalID string) (func(), error) {
	key := jobID + ":" + professionalID

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return nil, domain.ErrSubmissionInProgress
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
