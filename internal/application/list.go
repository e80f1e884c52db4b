package application

import (
	"context"
	"strings"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// ListUsers returns public views in the store's order, optionally only the
// active accounts.
func (s *Service) ListUsers(ctx context.Context, q ListUsersQuery) (res Result[[]UserView]) {
	defer recoverInternal(s, "list_users", &res)

	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return internal[[]UserView](s, "list_users.load", err, nil)
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		if q.ActiveOnly && !u.IsActive() {
			continue
		}
		out = append(out, NewUserView(u))
	}
	return ok(out)
}

// SearchUsers queries the user directory index. Without an index configured
// the result is always empty.
func (s *Service) SearchUsers(ctx context.Context, q SearchUsersQuery) (res Result[[]UserView]) {
	defer recoverInternal(s, "search_users", &res)

	term := strings.TrimSpace(q.Query)
	if s.Index == nil || term == "" {
		return ok([]UserView{})
	}
	size := q.Size
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	views, err := s.Index.Search(ctx, term, size)
	if err != nil {
		return internal[[]UserView](s, "search_users.query", err, nil)
	}
	if views == nil {
		views = []UserView{}
	}
	return ok(views)
}

// SyncDirectory re-projects one user into the search index from the store.
// It is a no-op without an index.
func (s *Service) SyncDirectory(ctx context.Context, userID string) (res Result[UserView]) {
	defer recoverInternal(s, "sync_directory", &res)

	user, failure := loadUser[UserView](ctx, s, "sync_directory.load", userID)
	if failure != nil {
		return *failure
	}
	view := NewUserView(user)
	if s.Index == nil {
		return ok(view)
	}
	if err := s.Index.Index(ctx, view); err != nil {
		return internal[UserView](s, "sync_directory.index", err, nil)
	}
	return ok(view)
}
