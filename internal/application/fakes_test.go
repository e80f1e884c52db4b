package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	"github.com/oksasatya/go-identity-service/internal/domain/repository"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-service/internal/infrastructure/memory"
)

var errBoom = errors.New("boom: connection refused at 10.0.0.7:5432")

// fakeHasher prefixes the plaintext; good enough to tell hashed from raw.
type fakeHasher struct {
	mu        sync.Mutex
	hashCalls int
	hashErr   error
	verifyErr error
}

func (h *fakeHasher) Hash(_ context.Context, plain string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hashCalls++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(_ context.Context, plain, hash string) (bool, error) {
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hash == "hashed:"+plain, nil
}

func (h *fakeHasher) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hashCalls
}

type fakeTokens struct {
	issueErr error
	revoked  map[string]bool
}

func (f *fakeTokens) Issue(_ context.Context, userID string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "tok-" + userID, nil
}

func (f *fakeTokens) Validate(_ context.Context, token string) bool {
	return strings.HasPrefix(token, "tok-") && !f.revoked[token]
}

func (f *fakeTokens) SubjectOf(ctx context.Context, token string) (string, bool) {
	if !f.Validate(ctx, token) {
		return "", false
	}
	return strings.TrimPrefix(token, "tok-"), true
}

func (f *fakeTokens) Revoke(_ context.Context, token string) error {
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[token] = true
	return nil
}

// flakyRepo wraps the memory store and injects failures per operation.
type flakyRepo struct {
	*memory.UserRepository
	getByEmailErr error
	getAllErr     error
	addErr        error
	updateErr     error
	panicOnGetAll bool
	updates       int
	// hideEmails makes GetByEmail miss, simulating a concurrent signup that
	// lands between the pre-check and the insert.
	hideEmails bool
}

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{UserRepository: memory.NewUserRepository()}
}

func (r *flakyRepo) GetByEmail(ctx context.Context, e vo.Email) (*entity.User, error) {
	if r.getByEmailErr != nil {
		return nil, r.getByEmailErr
	}
	if r.hideEmails {
		return nil, repository.ErrNotFound
	}
	return r.UserRepository.GetByEmail(ctx, e)
}

func (r *flakyRepo) GetAll(ctx context.Context) ([]*entity.User, error) {
	if r.panicOnGetAll {
		panic("nil map")
	}
	if r.getAllErr != nil {
		return nil, r.getAllErr
	}
	return r.UserRepository.GetAll(ctx)
}

func (r *flakyRepo) Add(ctx context.Context, u *entity.User) (*entity.User, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}
	return r.UserRepository.Add(ctx, u)
}

func (r *flakyRepo) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	r.updates++
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return r.UserRepository.Update(ctx, u)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []UserEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev UserEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// sliceIndex is a naive substring index over names and email.
type sliceIndex struct {
	mu       sync.Mutex
	docs     map[string]UserView
	order    []string
	err      error
	lastSize int
}

func (x *sliceIndex) Index(_ context.Context, v UserView) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	if x.docs == nil {
		x.docs = map[string]UserView{}
	}
	if _, seen := x.docs[v.ID]; !seen {
		x.order = append(x.order, v.ID)
	}
	x.docs[v.ID] = v
	return nil
}

func (x *sliceIndex) Search(_ context.Context, q string, size int) ([]UserView, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.lastSize = size
	if x.err != nil {
		return nil, x.err
	}
	q = strings.ToLower(q)
	var out []UserView
	for _, id := range x.order {
		v := x.docs[id]
		hay := strings.ToLower(v.FirstName + " " + v.LastName + " " + v.Email)
		if strings.Contains(hay, q) {
			out = append(out, v)
		}
		if len(out) == size {
			break
		}
	}
	return out, nil
}

type fixture struct {
	repo   *flakyRepo
	hasher *fakeHasher
	tokens *fakeTokens
	svc    *Service
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{repo: newFlakyRepo(), hasher: &fakeHasher{}, tokens: &fakeTokens{}}
	f.svc = NewService(f.repo, f.hasher, f.tokens, nil, opts...)
	return f
}

func validSignUp() SignUpCommand {
	return SignUpCommand{
		Email:     "test@example.com",
		Password:  "SecurePassword123!",
		FirstName: "João",
		LastName:  "Silva",
	}
}
