package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/cropcraft/server/internal/domain/hero"
	"github.com/cropcraft/server/internal/domain/services"
	"github.com/cropcraft/server/internal/domain/users"
)

var errStore = errors.New("store unavailable")

type stubUsersRepo struct {
	mu    sync.Mutex
	users map[string]users.User
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{users: map[string]users.User{}}
}

func (s *stubUsersRepo) Create(_ context.Context, user users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return users.ErrUsernameTaken
	}
	s.users[user.Username] = user
	return nil
}

func (s *stubUsersRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &user, nil
}

type stubHeroRepo struct {
	firstFn  func() (*hero.Hero, error)
	createFn func(hero.Hero) error
	updateFn func(hero.Hero) (*hero.Hero, error)
}

func (s stubHeroRepo) First(_ context.Context) (*hero.Hero, error) {
	if s.firstFn == nil {
		return nil, hero.ErrNotFound
	}
	return s.firstFn()
}

func (s stubHeroRepo) Create(_ context.Context, item hero.Hero) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(item)
}

func (s stubHeroRepo) Update(_ context.Context, item hero.Hero) (*hero.Hero, error) {
	if s.updateFn == nil {
		return nil, hero.ErrNotFound
	}
	return s.updateFn(item)
}

type stubServicesRepo struct {
	mu      sync.Mutex
	entries []services.Entry
	err     error
}

func (s *stubServicesRepo) List(_ context.Context) ([]services.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]services.Entry(nil), s.entries...), nil
}

func (s *stubServicesRepo) CreateBatch(_ context.Context, entries []services.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *stubServicesRepo) Update(_ context.Context, entry services.Entry) (*services.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = entry
			return &entry, nil
		}
	}
	return nil, services.ErrNotFound
}

type stubContactsRepo struct {
	mu    sync.Mutex
	items []contacts.Contact
	err   error
}

func (s *stubContactsRepo) Create(_ context.Context, contact contacts.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.items = append(s.items, contact)
	return nil
}

func (s *stubContactsRepo) List(_ context.Context) ([]contacts.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	items := append([]contacts.Contact(nil), s.items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	contacts []contacts.Contact
	err      error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, contact contacts.Contact) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, contact)
	return n.err
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }
