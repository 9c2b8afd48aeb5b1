package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	"github.com/fitlifeai/fitlife-backend/internal/domain/repository"
	"github.com/fitlifeai/fitlife-backend/pkg/checkout"
)

var errFakeNotFound = errors.New("not found")

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return errFakeNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetPremium(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errFakeNotFound
	}
	u.IsPremium = true
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errFakeNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *fakeTokenStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *fakeTokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *fakeTokenStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.ttls, key)
	return nil
}

type fakeSuggestionRepo struct {
	mu    sync.Mutex
	items []*entity.Suggestion
}

func (r *fakeSuggestionRepo) Create(s *entity.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeSuggestionRepo) ListByUser(userID, kind string, limit int) ([]*entity.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Suggestion
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.items[i]
		if s.UserID == userID && s.Kind == kind {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSuggestionRepo) DeleteOwned(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.items {
		if s.ID == id && s.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errFakeNotFound
}

func (r *fakeSuggestionRepo) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.Suggestion
	for _, s := range r.items {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	r.items = kept
	return nil
}

type fakeTransactionRepo struct {
	mu  sync.Mutex
	txs map[string]*entity.PaymentTransaction // keyed by session id
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txs: map[string]*entity.PaymentTransaction{}}
}

func (r *fakeTransactionRepo) Create(t *entity.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.txs[t.SessionID] = &cp
	return nil
}

func (r *fakeTransactionRepo) GetBySession(sessionID string) (*entity.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txs[sessionID]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTransactionRepo) UpdateStatus(sessionID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txs[sessionID]
	if !ok {
		return errFakeNotFound
	}
	t.PaymentStatus = status
	return nil
}

func (r *fakeTransactionRepo) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sid, t := range r.txs {
		if t.UserID == userID {
			delete(r.txs, sid)
		}
	}
	return nil
}

type fakeFeedbackRepo struct {
	mu    sync.Mutex
	items []*entity.Feedback
}

func (r *fakeFeedbackRepo) Create(f *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.items = append(r.items, &cp)
	return nil
}

// fakeGenerator returns a canned reply and records the prompts it saw.
type fakeGenerator struct {
	reply   string
	err     error
	systems []string
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, systemMsg, userMsg string) (string, error) {
	g.systems = append(g.systems, systemMsg)
	g.prompts = append(g.prompts, userMsg)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

// fakeCheckout is a scripted payment provider.
type fakeCheckout struct {
	session  *checkout.Session
	status   *checkout.SessionStatus
	err      error
	requests []checkout.SessionRequest
}

func (f *fakeCheckout) CreateSession(ctx context.Context, req checkout.SessionRequest) (*checkout.Session, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeCheckout) GetStatus(ctx context.Context, sessionID string) (*checkout.SessionStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}
