package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type memoryMatch struct {
	mu      sync.RWMutex
	matches map[string]*entity.Match
}

// NewMemoryMatchRepository - in-process directory used when redis is disabled.
func NewMemoryMatchRepository() MatchRepository {
	return &memoryMatch{
		matches: make(map[string]*entity.Match),
	}
}

func (that *memoryMatch) CreateOrUpdate(_ context.Context, match *entity.Match) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.matches[match.ID] = match.Clone()

	return nil
}

func (that *memoryMatch) GetByID(_ context.Context, id string) (*entity.Match, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	match, ok := that.matches[id]
	if !ok {
		return nil, apperror.ErrMatchNotFound
	}

	return match.Clone(), nil
}

func (that *memoryMatch) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.matches[id]; !ok {
		return apperror.ErrMatchNotFound
	}

	delete(that.matches, id)

	return nil
}

func (that *memoryMatch) List(_ context.Context) ([]*entity.Match, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	matches := make([]*entity.Match, 0, len(that.matches))
	for _, match := range that.matches {
		matches = append(matches, match.Clone())
	}

	sortByStart(matches)

	return matches, nil
}
