package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/volunteer-service/internal/config"
	"github.com/spec-kit/volunteer-service/internal/domain"
	"github.com/spec-kit/volunteer-service/internal/events"
	"github.com/spec-kit/volunteer-service/internal/repository"
)

// memStore backs the fake repositories. Registrations live in one relation,
// mirroring the schema: both derived membership lists read from it.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	events map[string]*domain.Event
	regs   map[string][]string // event id -> ordered user ids
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]*domain.User),
		events: make(map[string]*domain.Event),
		regs:   make(map[string][]string),
	}
}

func (s *memStore) userEvents(userID string) []string {
	ids := []string{}
	for eventID, userIDs := range s.regs {
		for _, id := range userIDs {
			if id == userID {
				ids = append(ids, eventID)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

func cloneUser(u *domain.User, registered []string) *domain.User {
	copied := *u
	copied.Skills = append([]string{}, u.Skills...)
	copied.RegisteredEvents = registered
	return &copied
}

func cloneEvent(e *domain.Event, registered []string) *domain.Event {
	copied := *e
	copied.Skills = append([]string{}, e.Skills...)
	copied.RegisteredVolunteers = append([]string{}, registered...)
	if e.MaxVolunteers != nil {
		max := *e.MaxVolunteers
		copied.MaxVolunteers = &max
	}
	return &copied
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.store.users[user.ID] = cloneUser(user, nil)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.store.users[user.ID] = cloneUser(user, nil)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneUser(user, r.store.userEvents(id)), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			return cloneUser(user, r.store.userEvents(user.ID)), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.User
	for _, user := range r.store.users {
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		result = append(result, *cloneUser(user, r.store.userEvents(user.ID)))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.users, id)
	// ON DELETE CASCADE
	for eventID, userIDs := range r.store.regs {
		kept := userIDs[:0]
		for _, userID := range userIDs {
			if userID != id {
				kept = append(kept, userID)
			}
		}
		r.store.regs[eventID] = kept
	}
	return nil
}

type fakeEventRepo struct {
	store *memStore
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	r.store.events[event.ID] = cloneEvent(event, nil)
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	event.UpdatedAt = time.Now()
	r.store.events[event.ID] = cloneEvent(event, nil)
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event, ok := r.store.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneEvent(event, r.store.regs[id]), nil
}

func (r *fakeEventRepo) List(_ context.Context) ([]domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []domain.Event
	for id, event := range r.store.events {
		result = append(result, *cloneEvent(event, r.store.regs[id]))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.events, id)
	delete(r.store.regs, id) // ON DELETE CASCADE
	return nil
}

type fakeRegistrationRepo struct {
	store *memStore
}

func (r *fakeRegistrationRepo) Add(_ context.Context, eventID, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event, ok := r.store.events[eventID]
	if !ok {
		return pgx.ErrNoRows
	}
	current := r.store.regs[eventID]
	if event.MaxVolunteers != nil && int32(len(current)) >= *event.MaxVolunteers {
		return repository.ErrCapacityExceeded
	}
	for _, id := range current {
		if id == userID {
			return repository.ErrAlreadyRegistered
		}
	}
	r.store.regs[eventID] = append(current, userID)
	return nil
}

func (r *fakeRegistrationRepo) Remove(_ context.Context, eventID, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current := r.store.regs[eventID]
	for i, id := range current {
		if id == userID {
			r.store.regs[eventID] = append(current[:i], current[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotRegistered
}

func (r *fakeRegistrationRepo) Exists(_ context.Context, eventID, userID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range r.store.regs[eventID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegistrationRepo) CountByEvent(_ context.Context, eventID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return len(r.store.regs[eventID]), nil
}

// fakeCache records cache traffic for assertions.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

type cacheMiss struct{}

func (cacheMiss) Error() string { return "cache miss" }

func (c *fakeCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	if !ok {
		return nil, cacheMiss{}
	}
	return val, nil
}

func (c *fakeCache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deletes++
	return nil
}

// captureDispatcher records published events.
type captureDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// fixture bundles the services wired over one shared store.
type fixture struct {
	store         *memStore
	users         *fakeUserRepo
	events        *fakeEventRepo
	registrations *fakeRegistrationRepo
	cache         *fakeCache
	dispatcher    *captureDispatcher

	authService         *AuthService
	userService         *UserService
	eventService        *EventService
	registrationService *RegistrationService
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:         store,
		users:         &fakeUserRepo{store: store},
		events:        &fakeEventRepo{store: store},
		registrations: &fakeRegistrationRepo{store: store},
		cache:         newFakeCache(),
		dispatcher:    &captureDispatcher{},
	}

	cfg := testConfig()
	f.authService = NewAuthService(cfg, AuthDependencies{UserRepo: f.users, Dispatcher: f.dispatcher})
	f.userService = NewUserService(f.users, f.dispatcher)
	f.eventService = NewEventService(EventDependencies{
		EventRepo:  f.events,
		UserRepo:   f.users,
		Cache:      f.cache,
		Dispatcher: f.dispatcher,
	})
	f.registrationService = NewRegistrationService(RegistrationDependencies{
		EventRepo:        f.events,
		UserRepo:         f.users,
		RegistrationRepo: f.registrations,
		Cache:            f.cache,
		Dispatcher:       f.dispatcher,
	})
	return f
}

func (f *fixture) mustRegisterUser(t testingT, name, email string) *domain.User {
	t.Helper()
	user, err := f.authService.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register user %s: %v", email, err)
	}
	return user
}

func (f *fixture) mustApprove(t testingT, userID string) {
	t.Helper()
	if _, err := f.userService.UpdateStatus(context.Background(), userID, domain.UserStatusApproved); err != nil {
		t.Fatalf("approve user: %v", err)
	}
}

func (f *fixture) mustCreateAdmin(t testingT, email string) *domain.User {
	t.Helper()
	user := f.mustRegisterUser(t, "Admin", email)
	role := domain.UserRoleAdmin
	updated, err := f.userService.UpdateUser(context.Background(), user.ID, UserUpdateInput{Role: &role})
	if err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	f.mustApprove(t, updated.ID)
	return updated
}

func (f *fixture) mustCreateEvent(t testingT, createdBy string, input EventCreateInput) *domain.Event {
	t.Helper()
	event, err := f.eventService.CreateEvent(context.Background(), createdBy, input)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

// testingT is the subset of *testing.T the fixture helpers need.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			TokenTTLDays: 30,
			BcryptCost:   bcrypt.MinCost,
		},
	}
}
