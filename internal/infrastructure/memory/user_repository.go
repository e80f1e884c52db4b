// Package memory is a process-local UserRepository used by the "memory"
// store driver and by tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	"github.com/oksasatya/go-identity-service/internal/domain/repository"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

// UserRepository keeps users in insertion order with a unique index on the
// lowercased email. Stored values are snapshots; callers never share an
// aggregate with the store.
type UserRepository struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]entity.UserState
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]entity.UserState),
		byEmail: make(map[string]string),
	}
}

func emailKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r *UserRepository) GetByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email.String())]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return entity.Restore(r.byID[id]), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return entity.Restore(st), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, entity.Restore(r.byID[id]))
	}
	return out, nil
}

func (r *UserRepository) Add(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := u.State()
	key := emailKey(st.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[key]; taken {
		return nil, repository.ErrDuplicateEmail
	}
	if _, taken := r.byID[st.ID]; taken {
		return nil, fmt.Errorf("memory: user id %s already stored", st.ID)
	}
	r.byID[st.ID] = st
	r.byEmail[key] = st.ID
	r.order = append(r.order, st.ID)
	return entity.Restore(st), nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := u.State()
	key := emailKey(st.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.byID[st.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if owner, taken := r.byEmail[key]; taken && owner != st.ID {
		return nil, repository.ErrDuplicateEmail
	}
	delete(r.byEmail, emailKey(prev.Email))
	r.byEmail[key] = st.ID
	r.byID[st.ID] = st
	return entity.Restore(st), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
