package cheer

import (
	"context"
	"time"

	"github.com/gbswdev/snackbar/core/bus"
)

type (
	Repository interface {
		CreateCheer(ctx context.Context, ch Cheer) (Cheer, error)
		// QueryCheersBetween returns messages created within [from, to], newest
		// first, optionally narrowed to a target audience.
		QueryCheersBetween(ctx context.Context, target string, from, to time.Time) ([]Cheer, error)
	}

	Service struct {
		repo   Repository
		broker *bus.Broker
	}
)

func NewService(repo Repository, broker *bus.Broker) *Service {
	return &Service{repo: repo, broker: broker}
}

func (svc *Service) Create(ctx context.Context, nc NewCheer) (Cheer, error) {
	ch := Cheer{
		Message:   nc.Message,
		Target:    nc.Target,
		CreatedAt: time.Now().UTC(),
	}
	ch, err := svc.repo.CreateCheer(ctx, ch)
	if err != nil {
		return Cheer{}, err
	}
	svc.broker.Publish(CreatedEvent{Cheer: ch})
	return ch, nil
}

// Today returns today's messages (local day window), optionally filtered by
// target. An invalid target is ignored rather than rejected.
func (svc *Service) Today(ctx context.Context, target string) ([]Cheer, error) {
	if target != TargetStudent && target != TargetTeacher {
		target = ""
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return svc.repo.QueryCheersBetween(ctx, target, start, end)
}
