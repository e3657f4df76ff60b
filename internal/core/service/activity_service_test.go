package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/revit/marketplace/internal/core/domain"
)

func TestActivityService_RecordAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.client(t, "carla")
	pro := env.pro(t, "pete", "plumber")
	stranger := env.pro(t, "sam", "plumber")
	job := env.postJob(t, owner, "plumber")
	app := env.apply(t, pro, job.ID)
	if _, err := env.apps.Decide(ctx, owner, app.ID, domain.DecisionAccept); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	svc := NewActivityService(env.store.Jobs(), env.store.Activity(), zerolog.Nop())
	// Replay what the dispatcher would have recorded.
	for _, e := range env.events.events {
		if err := svc.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	feed, err := svc.ListActivity(ctx, owner, job.ID)
	if err != nil {
		t.Fatalf("ListActivity: %v", err)
	}
	if len(feed) != len(env.events.events) {
		t.Fatalf("expected %d events, got %d", len(env.events.events), len(feed))
	}
	if feed[0].Type != domain.EventJobAssigned || feed[len(feed)-1].Type != domain.EventJobCreated {
		t.Fatalf("feed must be newest first: first=%s last=%s", feed[0].Type, feed[len(feed)-1].Type)
	}

	if _, err := svc.ListActivity(ctx, pro, job.ID); err != nil {
		t.Fatalf("assigned professional may read the feed: %v", err)
	}
	if _, err := svc.ListActivity(ctx, stranger, job.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("strangers must be rejected, got %v", err)
	}
	if _, err := svc.ListActivity(ctx, owner, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing job must be NotFound, got %v", err)
	}
}

func TestActivityService_Record_RequiresJob(t *testing.T) {
	env := newTestEnv(t)
	svc := NewActivityService(env.store.Jobs(), env.store.Activity(), zerolog.Nop())

	err := svc.Record(context.Background(), domain.JobEvent{Type: domain.EventJobCreated})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
