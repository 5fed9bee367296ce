// Package session owns the in-memory state of one uploaded product
// collection: the parsed records, the derived filter defaults, and the
// current filtered view.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/product-curator/internal/filter"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/models"
)

// Session holds one upload's products. The parsed collection is never
// mutated after creation; every filter pass produces a new view slice.
type Session struct {
	ID string

	mu         sync.RWMutex
	products   []models.ProductRecord
	filtered   []models.ProductRecord
	criteria   models.FilterCriteria
	ranges     filter.Ranges
	options    filter.Options
	lastAccess time.Time
}

// Ranges returns the filter defaults derived at upload time.
func (s *Session) Ranges() filter.Ranges {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ranges
}

// Options returns the categorical options derived at upload time.
func (s *Session) Options() filter.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

// Criteria returns the most recently applied filter criteria.
func (s *Session) Criteria() models.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Count returns the size of the full parsed collection.
func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// View returns the current filtered view.
func (s *Session) View() []models.ProductRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// SubCategories returns every sub-category present in the full
// collection, in row order with duplicates, for batch blacklist lookup.
func (s *Session) SubCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]string, 0, len(s.products))
	for _, p := range s.products {
		if p.SubCategory != "" {
			categories = append(categories, p.SubCategory)
		}
	}
	return categories
}

// ApplyFilter runs the filter engine over the full collection with the
// given criteria and blacklist snapshot, stores the result as the
// current view, and returns it with its stats. The blacklist snapshot
// is immutable for the duration of the pass; a toggle made afterwards
// only affects subsequent passes.
func (s *Session) ApplyFilter(
	criteria models.FilterCriteria,
	blacklist map[string]bool,
) ([]models.ProductRecord, filter.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := filter.Apply(s.products, criteria, blacklist)
	s.criteria = criteria
	s.filtered = filtered
	return filtered, filter.ComputeStats(filtered)
}

// Store keeps sessions in memory, keyed by id, and expires them after
// an idle TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      logger.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// janitorInterval is how often expired sessions are collected.
const janitorInterval = 5 * time.Minute

// NewStore creates the session store and starts its expiry janitor.
func NewStore(ttl time.Duration, log logger.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create registers a new session for a parsed collection, deriving
// filter defaults and seeding the view with the full collection.
func (st *Store) Create(products []models.ProductRecord) *Session {
	ranges, options := filter.DeriveDefaults(products)

	session := &Session{
		ID:         uuid.New().String(),
		products:   products,
		filtered:   products,
		criteria:   ranges.Criteria(),
		ranges:     ranges,
		options:    options,
		lastAccess: time.Now(),
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()

	st.log.Info("Session created",
		logger.String("session_id", session.ID),
		logger.Int("product_count", len(products)),
	)
	return session
}

// Get returns the session for id and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	session, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	session.mu.Lock()
	session.lastAccess = time.Now()
	session.mu.Unlock()
	return session, true
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close stops the expiry janitor.
func (st *Store) Close() {
	st.stopOnce.Do(func() { close(st.stop) })
}

func (st *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			st.expire(time.Now())
		}
	}
}

// expire drops sessions idle longer than the TTL.
func (st *Store) expire(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for id, session := range st.sessions {
		session.mu.RLock()
		idle := now.Sub(session.lastAccess)
		session.mu.RUnlock()

		if idle > st.ttl {
			delete(st.sessions, id)
			st.log.Info("Session expired",
				logger.String("session_id", id),
				logger.Duration("idle", idle),
			)
		}
	}
}
