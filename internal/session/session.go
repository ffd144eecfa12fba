// Package session holds the single source of truth for one user's reading
// flow: welcome -> shuffling -> picking -> reading, cycled by reset.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhairen/AItaluo/internal/domain"
	"github.com/zhairen/AItaluo/internal/ports"
)

// Snapshot is an immutable view of the session, pushed to the presentation
// layer on every visible change.
type Snapshot struct {
	SessionID   string        `json:"session_id"`
	Phase       domain.Phase  `json:"phase"`
	Question    string        `json:"question"`
	Deck        []domain.Card `json:"deck"`
	Selection   []domain.Card `json:"selection"`
	ReadingText string        `json:"reading_text"`
	IsLoading   bool          `json:"is_loading"`
}

// Session is a single-user state machine. All mutation goes through the
// intent methods; the generation counter discards async resolutions that
// target a session that has since been reset.
type Session struct {
	mu  sync.Mutex
	id  string
	gen uint64

	catalog      []domain.Card
	rng          domain.RNG
	reader       ports.Reader
	shuffleDelay time.Duration
	logger       *slog.Logger
	notify       func(Snapshot)

	phase       domain.Phase
	question    string
	deck        []domain.Card
	selection   []domain.Card
	readingText string
	loading     bool
}

// New creates a session in the welcome phase with a freshly shuffled deck.
// notify may be nil; it is invoked outside the session lock.
func New(catalog []domain.Card, rng domain.RNG, reader ports.Reader, shuffleDelay time.Duration, logger *slog.Logger, notify func(Snapshot)) *Session {
	if notify == nil {
		notify = func(Snapshot) {}
	}
	return &Session{
		id:           uuid.NewString(),
		catalog:      catalog,
		rng:          rng,
		reader:       reader,
		shuffleDelay: shuffleDelay,
		logger:       logger,
		notify:       notify,
		phase:        domain.PhaseWelcome,
		deck:         domain.Shuffle(catalog, rng),
	}
}

// ID returns the stable session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Start stores the question and moves welcome -> shuffling. After the shuffle
// delay the session advances to picking on its own.
func (s *Session) Start(question string) error {
	s.mu.Lock()
	if s.phase != domain.PhaseWelcome {
		s.mu.Unlock()
		return domain.ErrWrongPhase
	}
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		s.mu.Unlock()
		return domain.ErrBlankQuestion
	}
	s.question = trimmed
	s.phase = domain.PhaseShuffling
	gen := s.gen
	snap := s.snapshotLocked()
	s.mu.Unlock()

	time.AfterFunc(s.shuffleDelay, func() { s.finishShuffle(gen) })
	s.notify(snap)
	return nil
}

func (s *Session) finishShuffle(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.phase != domain.PhaseShuffling {
		s.mu.Unlock()
		return
	}
	s.phase = domain.PhasePicking
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// SelectCard appends the identified card to the selection. Calls that fail a
// guard (wrong phase, unknown ID, duplicate, selection already full) are
// silent no-ops. The third distinct selection flips the session to reading
// with the loading flag set before the request is resolved asynchronously.
func (s *Session) SelectCard(ctx context.Context, cardID string) {
	s.mu.Lock()
	if s.phase != domain.PhasePicking || len(s.selection) >= domain.SpreadSize {
		s.mu.Unlock()
		return
	}
	card, ok := s.findCard(cardID)
	if !ok || s.isSelected(cardID) {
		s.mu.Unlock()
		return
	}
	s.selection = append(s.selection, card)

	if len(s.selection) < domain.SpreadSize {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
		return
	}

	s.loading = true
	s.phase = domain.PhaseReading
	gen := s.gen
	question := s.question
	cards := make([]domain.Card, len(s.selection))
	copy(cards, s.selection)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	go s.performReading(ctx, gen, question, cards)
}

// performReading resolves the reading and applies it only if the session has
// not been reset in the meantime.
func (s *Session) performReading(ctx context.Context, gen uint64, question string, cards []domain.Card) {
	text := s.reader.RequestReading(ctx, question, cards)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Info("discarding stale reading resolution", "session_id", s.id)
		return
	}
	s.readingText = text
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Reset returns the session to the welcome phase with a fresh deck. Any
// outstanding shuffle timer or reading resolution becomes stale.
func (s *Session) Reset() {
	s.mu.Lock()
	s.gen++
	s.phase = domain.PhaseWelcome
	s.question = ""
	s.selection = nil
	s.readingText = ""
	s.loading = false
	s.deck = domain.Shuffle(s.catalog, s.rng)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Session) findCard(id string) (domain.Card, bool) {
	for _, c := range s.deck {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Card{}, false
}

func (s *Session) isSelected(id string) bool {
	for _, c := range s.selection {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) snapshotLocked() Snapshot {
	deck := make([]domain.Card, len(s.deck))
	copy(deck, s.deck)
	selection := make([]domain.Card, len(s.selection))
	copy(selection, s.selection)
	return Snapshot{
		SessionID:   s.id,
		Phase:       s.phase,
		Question:    s.question,
		Deck:        deck,
		Selection:   selection,
		ReadingText: s.readingText,
		IsLoading:   s.loading,
	}
}
