// Package catalog holds the fixed 78-card tarot catalog: the 22 Major Arcana
// loaded from an embedded JSON table and the 56 Minor Arcana (4 suits x 14
// ranks) generated from their naming scheme.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/zhairen/AItaluo/internal/domain"
)

//go:embed data/major_arcana.json
var catalogFS embed.FS

// imageBaseURL points at the Trusted Tarot card artwork, which follows a
// consistent slug naming convention.
const imageBaseURL = "https://www.trustedtarot.com/img/cards"

// Size is the number of cards in a complete catalog.
const Size = 78

var suitLocalNames = map[domain.Suit]string{
	domain.SuitWands:     "权杖",
	domain.SuitCups:      "圣杯",
	domain.SuitSwords:    "宝剑",
	domain.SuitPentacles: "星币",
}

var rankNames = []struct {
	Name      string
	LocalName string
}{
	{"Ace", "首牌"},
	{"Two", "二"},
	{"Three", "三"},
	{"Four", "四"},
	{"Five", "五"},
	{"Six", "六"},
	{"Seven", "七"},
	{"Eight", "八"},
	{"Nine", "九"},
	{"Ten", "十"},
	{"Page", "侍从"},
	{"Knight", "骑士"},
	{"Queen", "王后"},
	{"King", "国王"},
}

// minorKeywords applies to every Minor Arcana card; the deck's per-card
// symbolism lives in the Major Arcana table.
var minorKeywords = []string{"日常", "能量", "行动"}

// Store builds the catalog once and hands out read-only views of it.
type Store struct {
	once  sync.Once
	cards []domain.Card
	err   error
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) init() {
	raw, err := catalogFS.ReadFile("data/major_arcana.json")
	if err != nil {
		s.err = fmt.Errorf("read embedded major arcana: %w", err)
		return
	}

	var majors []struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		LocalName string   `json:"local_name"`
		Keywords  []string `json:"keywords"`
	}
	if err := json.Unmarshal(raw, &majors); err != nil {
		s.err = fmt.Errorf("parse embedded major arcana: %w", err)
		return
	}

	cards := make([]domain.Card, 0, Size)
	for _, m := range majors {
		cards = append(cards, domain.Card{
			ID:        m.ID,
			Name:      m.Name,
			LocalName: m.LocalName,
			Arcana:    domain.ArcanaMajor,
			Keywords:  m.Keywords,
			Image:     imageURL(m.Name),
		})
	}

	for _, suit := range domain.Suits {
		for i, rank := range rankNames {
			name := fmt.Sprintf("%s of %s", rank.Name, suit)
			cards = append(cards, domain.Card{
				ID:        fmt.Sprintf("%s-%d", strings.ToLower(string(suit)), i+1),
				Name:      name,
				LocalName: suitLocalNames[suit] + rank.LocalName,
				Arcana:    domain.ArcanaMinor,
				Suit:      suit,
				Rank:      i + 1,
				Keywords:  minorKeywords,
				Image:     imageURL(name),
			})
		}
	}

	if len(cards) != Size {
		s.err = fmt.Errorf("catalog has %d cards, want %d", len(cards), Size)
		return
	}
	s.cards = cards
}

// Cards returns the full catalog in canonical order. The returned slice is a
// copy; callers may reorder it freely.
func (s *Store) Cards() ([]domain.Card, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out, nil
}

// imageURL converts "The Fool" -> ".../the-fool.png".
func imageURL(name string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return imageBaseURL + "/" + slug + ".png"
}
