package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/auth"
)

// AuthEventKind distinguishes the two auth transitions
type AuthEventKind int

const (
	// Authenticated is published on Anonymous -> Authenticated and after
	// SignedOut when a different user logs in
	Authenticated AuthEventKind = iota + 1
	// SignedOut is published on Authenticated -> Anonymous and when a
	// different user logs in
	SignedOut
)

func (k AuthEventKind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case SignedOut:
		return "signed_out"
	}
	return "unknown"
}

// AuthEvent describes one auth transition. Generation identifies the
// session it opened or closed.
type AuthEvent struct {
	Kind       AuthEventKind
	User       models.User
	Generation uint64
}

// SessionOptions configures a SessionStore
type SessionOptions struct {
	Gateway            Gateway
	Repository         repositories.StateRepository
	Logger             zerolog.Logger
	LegacyOfflineLogin bool
}

// SessionStore is the single source of truth for who is logged in and for
// the events, accommodations and bookings caches.
//
// Every auth transition bumps a generation counter. Background fetches and
// mutations capture the generation when they start and drop their result if
// it changed, so a response that arrives after a logout never repopulates
// the caches.
type SessionStore struct {
	gateway       Gateway
	repo          repositories.StateRepository
	logger        zerolog.Logger
	legacyOffline bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// persistMu serialises state changes that are mirrored to the repository
	persistMu sync.Mutex

	mu             sync.RWMutex
	user           *models.User
	generation     uint64
	closed         bool
	loading        int
	darkMode       bool
	signup         *models.SignupPayload
	events         []models.Event
	accommodations []models.Accommodation
	bookings       []models.Booking

	subMu       sync.Mutex
	subscribers map[int]func(AuthEvent)
	nextSub     int
}

// NewSessionStore creates the store and restores darkMode and currentUser
// from the repository. A restored user counts as a login and triggers the
// initial fetches.
func NewSessionStore(ctx context.Context, opts SessionOptions) *SessionStore {
	repo := opts.Repository
	if repo == nil {
		repo = repositories.NewMemoryStateRepository()
	}

	scope, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &SessionStore{
		gateway:        opts.Gateway,
		repo:           repo,
		logger:         opts.Logger.With().Str("component", "session_store").Logger(),
		legacyOffline:  opts.LegacyOfflineLogin,
		ctx:            scope,
		cancel:         cancel,
		events:         []models.Event{},
		accommodations: []models.Accommodation{},
		bookings:       []models.Booking{},
		subscribers:    make(map[int]func(AuthEvent)),
	}

	s.Subscribe(func(ev AuthEvent) {
		if ev.Kind == Authenticated {
			s.refreshInBackground(ev.Generation)
		}
	})

	s.restore(ctx)
	return s
}

func (s *SessionStore) restore(ctx context.Context) {
	if value, ok, err := s.repo.Get(ctx, repositories.KeyDarkMode); err != nil {
		s.logger.Warn().Err(err).Msg("Could not read dark mode preference")
	} else if ok {
		s.darkMode = value == "true"
	}

	value, ok, err := s.repo.Get(ctx, repositories.KeyCurrentUser)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Could not read persisted user")
		return
	}
	if !ok || value == "" || value == "null" {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		s.logger.Warn().Err(err).Msg("Discarding unreadable persisted user")
		return
	}
	s.Login(ctx, &user)
}

// Subscribe registers fn for auth transitions and returns a function that
// removes it. fn runs on the goroutine that caused the transition and must
// not block.
func (s *SessionStore) Subscribe(fn func(AuthEvent)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *SessionStore) publish(ev AuthEvent) {
	s.subMu.Lock()
	fns := make([]func(AuthEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Login makes user the current user and persists it. A nil or empty user is
// logged and ignored. Logging in again as the same user replaces it silently.
// Logging in as a different user is a logout followed by a login: the caches
// and the pending signup are cleared and SignedOut is published before
// Authenticated. The token is kept, since the gateway already holds the new
// user's one.
func (s *SessionStore) Login(ctx context.Context, user *models.User) {
	if user.IsEmpty() {
		s.logger.Warn().Msg("Ignoring login with an empty user")
		return
	}

	s.persistMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.persistMu.Unlock()
		return
	}
	current := *user
	var events []AuthEvent
	if s.user != nil && s.user.ID != current.ID {
		s.generation++
		s.clearCachesLocked()
		events = append(events, AuthEvent{Kind: SignedOut, User: *s.user, Generation: s.generation})
		s.user = nil
	}
	if s.user == nil {
		s.generation++
		events = append(events, AuthEvent{Kind: Authenticated, User: current, Generation: s.generation})
	}
	s.user = &current
	s.mu.Unlock()

	s.persistUser(ctx, current)
	s.persistMu.Unlock()

	if len(events) == 2 {
		s.logger.Info().Str("previous_user_id", events[0].User.ID.String()).Msg("Switching user")
	}
	s.logger.Info().Str("user_id", current.ID.String()).Str("profile_type", string(current.ProfileType)).Msg("User logged in")
	for _, ev := range events {
		s.publish(ev)
	}
}

// Logout clears the user, the caches, the pending signup and the token.
// Calling it while anonymous is harmless.
func (s *SessionStore) Logout(ctx context.Context) {
	s.persistMu.Lock()
	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.user = nil
	s.generation++
	generation := s.generation
	s.clearCachesLocked()
	s.mu.Unlock()

	if s.gateway != nil {
		s.gateway.ClearToken()
	}
	if err := s.repo.Remove(ctx, repositories.KeyCurrentUser); err != nil {
		s.logger.Warn().Err(err).Msg("Could not remove persisted user")
	}
	s.persistMu.Unlock()

	if wasAuthenticated {
		s.logger.Info().Msg("User logged out")
		s.publish(AuthEvent{Kind: SignedOut, Generation: generation})
	}
}

// clearCachesLocked drops the per-user state; s.mu must be held
func (s *SessionStore) clearCachesLocked() {
	s.signup = nil
	s.events = []models.Event{}
	s.accommodations = []models.Accommodation{}
	s.bookings = []models.Booking{}
}

func (s *SessionStore) persistUser(ctx context.Context, user models.User) {
	encoded, err := json.Marshal(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Could not encode user for persistence")
		return
	}
	if err := s.repo.Set(ctx, repositories.KeyCurrentUser, string(encoded)); err != nil {
		s.logger.Warn().Err(err).Msg("Could not persist current user")
	}
}

// ToggleDarkMode flips the preference, persists it as "true"/"false" and
// returns the new value.
func (s *SessionStore) ToggleDarkMode(ctx context.Context) bool {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.darkMode = !s.darkMode
	mode := s.darkMode
	s.mu.Unlock()

	value := "false"
	if mode {
		value = "true"
	}
	if err := s.repo.Set(ctx, repositories.KeyDarkMode, value); err != nil {
		s.logger.Warn().Err(err).Msg("Could not persist dark mode preference")
	}
	return mode
}

// DarkMode returns the current preference
func (s *SessionStore) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// CurrentUser returns a copy of the current user
func (s *SessionStore) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is logged in
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// TokenExpired reports whether the backend access token has expired at now
func (s *SessionStore) TokenExpired(now time.Time) bool {
	if s.gateway == nil {
		return false
	}
	return auth.TokenExpired(s.gateway.Token(), now)
}

// Loading reports whether any collection fetch is in flight
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// Events returns a snapshot of the events cache
func (s *SessionStore) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.events)
}

// Accommodations returns a snapshot of the accommodations cache
func (s *SessionStore) Accommodations() []models.Accommodation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.accommodations)
}

// Bookings returns a snapshot of the bookings cache
func (s *SessionStore) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.bookings)
}

// scoped derives a context that is also cancelled when the store closes
func (s *SessionStore) scoped(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// currentGeneration returns the generation a mutation should be applied
// under, and false once the store is closed.
func (s *SessionStore) currentGeneration() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation, !s.closed
}

// applyIf runs fn under the write lock unless the session changed since
// generation was captured.
func (s *SessionStore) applyIf(generation uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.generation != generation {
		return false
	}
	fn()
	return true
}

// beginFetch marks a fetch in flight; it refuses while anonymous or closed
func (s *SessionStore) beginFetch() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.user == nil {
		return 0, false
	}
	s.loading++
	return s.generation, true
}

func (s *SessionStore) endFetch() {
	s.mu.Lock()
	s.loading--
	s.mu.Unlock()
}

// fetchCollection is the shared body of the three fetch operations. A failed
// read replaces the collection with an empty one and is returned wrapped with
// the collection name. Skipped and dropped fetches return nil.
func fetchCollection[T models.Keyed](
	s *SessionStore,
	ctx context.Context,
	name string,
	get func(context.Context) ([]T, error),
	apply func([]T),
) error {
	generation, ok := s.beginFetch()
	if !ok {
		s.logger.Debug().Str("collection", name).Msg("Skipping fetch while anonymous")
		return nil
	}
	defer s.endFetch()

	ctx, cancel := s.scoped(ctx)
	defer cancel()

	items, fetchErr := get(ctx)
	if fetchErr != nil {
		s.logger.Warn().Err(fetchErr).Str("collection", name).Msg("Fetch failed, showing empty collection")
		items = nil
		fetchErr = fmt.Errorf("fetch %s: %w", name, fetchErr)
	}
	deduped := dedupByID(items)

	if !s.applyIf(generation, func() { apply(deduped) }) {
		s.logger.Debug().Str("collection", name).Msg("Dropping fetch result from a previous session")
		return nil
	}
	return fetchErr
}

// FetchEvents replaces the events cache from the backend
func (s *SessionStore) FetchEvents(ctx context.Context) error {
	return fetchCollection(s, ctx, "events", s.gateway.GetEvents, func(items []models.Event) {
		s.events = items
	})
}

// FetchAccommodations replaces the accommodations cache from the backend
func (s *SessionStore) FetchAccommodations(ctx context.Context) error {
	return fetchCollection(s, ctx, "accommodations", s.gateway.GetAccommodations, func(items []models.Accommodation) {
		s.accommodations = items
	})
}

// FetchBookings replaces the bookings cache from the backend
func (s *SessionStore) FetchBookings(ctx context.Context) error {
	return fetchCollection(s, ctx, "bookings", s.gateway.GetBookings, func(items []models.Booking) {
		s.bookings = items
	})
}

// RefreshAll runs the three fetches concurrently and returns the first
// failure. A failing fetch does not cancel the others.
func (s *SessionStore) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.FetchEvents(ctx) })
	g.Go(func() error { return s.FetchAccommodations(ctx) })
	g.Go(func() error { return s.FetchBookings(ctx) })
	return g.Wait()
}

func (s *SessionStore) refreshInBackground(generation uint64) {
	s.mu.Lock()
	if s.closed || s.generation != generation {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		if err := s.RefreshAll(s.ctx); err != nil {
			s.logger.Warn().Err(err).Uint64("generation", generation).Msg("Initial refresh incomplete")
		}
	}()
}

// Wait blocks until background fetches started by auth transitions finish
func (s *SessionStore) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight requests and waits for background work. Late
// responses are discarded and later operations become no-ops.
func (s *SessionStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.generation++
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
