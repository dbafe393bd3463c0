package dummydb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gbswdev/snackbar/core/cheer"
)

type cheerRepository struct {
	db *cheerTable
}

var _ cheer.Repository = (*cheerRepository)(nil) // interface compliance check

func NewCheerRepository(db *DB) cheer.Repository {
	return &cheerRepository{db: db.cheers}
}

func (repo *cheerRepository) CreateCheer(_ context.Context, ch cheer.Cheer) (cheer.Cheer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ch.ID = uuid.New().String()
	repo.db.rows[ch.ID] = &ch
	repo.db.seq = append(repo.db.seq, ch.ID)
	return ch, nil
}

func (repo *cheerRepository) QueryCheersBetween(_ context.Context, target string, from, to time.Time) ([]cheer.Cheer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	cheers := make([]cheer.Cheer, 0)
	for i := len(repo.db.seq) - 1; i >= 0; i-- { // newest first
		ch := repo.db.rows[repo.db.seq[i]]
		if ch.CreatedAt.Before(from) || ch.CreatedAt.After(to) {
			continue
		}
		if target != "" && ch.Target != target {
			continue
		}
		cheers = append(cheers, *ch)
	}
	return cheers, nil
}
