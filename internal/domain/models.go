package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Arcana classifies a tarot card as Major or Minor.
type Arcana string

const (
	ArcanaMajor Arcana = "Major"
	ArcanaMinor Arcana = "Minor"
)

// Suit is the suit of a Minor Arcana card.
type Suit string

const (
	SuitWands     Suit = "Wands"
	SuitCups      Suit = "Cups"
	SuitSwords    Suit = "Swords"
	SuitPentacles Suit = "Pentacles"
)

// Suits lists all four Minor Arcana suits in canonical order.
var Suits = []Suit{SuitWands, SuitCups, SuitSwords, SuitPentacles}

// Card is a single tarot card. Major Arcana cards carry no suit or rank;
// Minor Arcana cards carry both (rank 1-10 plus Page/Knight/Queen/King as 11-14).
type Card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	LocalName string   `json:"local_name"`
	Arcana    Arcana   `json:"arcana"`
	Suit      Suit     `json:"suit,omitempty"`
	Rank      int      `json:"rank,omitempty"`
	Keywords  []string `json:"keywords"`
	Image     string   `json:"image"`
}

// Phase is where a session currently is in the reading flow.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"
	PhaseShuffling Phase = "shuffling"
	PhasePicking   Phase = "picking"
	PhaseReading   Phase = "reading"
)

// SpreadSize is the number of cards drawn for a reading.
const SpreadSize = 3

// PositionLabel returns the interpretive label for a 0-based draw position.
func PositionLabel(i int) string {
	switch i {
	case 0:
		return "Past / Situation"
	case 1:
		return "Present / Action"
	default:
		return "Future / Outcome"
	}
}
