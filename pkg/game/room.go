package game

import (
	"fmt"
	"math/rand"
	"time"

	"baralho-server/pkg/catalog"
)

// Card is a single dealt card. The ID is stable for the lifetime of a deal
// and is regenerated on reset.
type Card struct {
	ID       string         `json:"id"`
	Value    *catalog.Entry `json:"value"`
	Revealed bool           `json:"revealed"`
}

// Room is a live game room: a shuffled deal of the catalog plus the number of
// connected players. The card order is fixed at deal time; the only mutation
// a deal permits is flipping the top card's revealed flag.
type Room struct {
	Code        string `json:"code"`
	Cards       []Card `json:"cards"`
	PlayerCount int    `json:"playerCount"`

	catalog []*catalog.Entry
	seed    int64
	rng     *rand.Rand
}

// State is a point-in-time snapshot of a room, safe to hand to another
// goroutine or serialize for the wire.
type State struct {
	Code        string `json:"code"`
	Cards       []Card `json:"cards"`
	PlayerCount int    `json:"playerCount"`
}

// NewRoom returns a room with a freshly shuffled deal of the given catalog
func NewRoom(code string, entries []*catalog.Entry) *Room {
	r := &Room{
		Code:    code,
		catalog: entries,
		seed:    -1,
	}

	r.Shuffle()
	return r
}

// SetSeed will set the shuffle seed
// This should only be used by tests. The seed is normally picked by Shuffle().
func (r *Room) SetSeed(seed int64) {
	r.seed = seed
	r.rng = rand.New(rand.NewSource(seed))
}

// Shuffle deals a fresh, uniformly shuffled permutation of the catalog.
// Card identifiers are reassigned sequentially and every card starts
// unrevealed.
func (r *Room) Shuffle() {
	if r.rng == nil {
		r.SetSeed(time.Now().UnixNano())
	}

	entries := make([]*catalog.Entry, len(r.catalog))
	copy(entries, r.catalog)

	for j := len(entries) - 1; j > 0; j-- {
		i := r.rng.Intn(j + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}

	cards := make([]Card, len(entries))
	for i, entry := range entries {
		cards[i] = Card{
			ID:    fmt.Sprintf("card-%d", i),
			Value: entry,
		}
	}

	r.Cards = cards
}

// Reset reshuffles the full catalog in place and clears all revealed flags.
// The room code and player count are untouched.
func (r *Room) Reset() {
	r.Shuffle()
}

// TopCard returns the first card in deal order that has not been revealed,
// or nil if the deck is fully revealed
func (r *Room) TopCard() *Card {
	return TopCard(r.Cards)
}

// Reveal flips the revealed flag of the card with the given identifier.
// The reveal is accepted only if that card is the current top card; requests
// for unknown, already revealed, or out-of-order cards are silently rejected.
// It returns true if a card was flipped.
func (r *Room) Reveal(cardID string) bool {
	return Reveal(r.Cards, cardID)
}

// State returns a snapshot of the room
func (r *Room) State() State {
	cards := make([]Card, len(r.Cards))
	copy(cards, r.Cards)

	return State{
		Code:        r.Code,
		Cards:       cards,
		PlayerCount: r.PlayerCount,
	}
}

// TopCard returns the first unrevealed card of a deal, or nil if every card
// has been revealed
func TopCard(cards []Card) *Card {
	for i := range cards {
		if !cards[i].Revealed {
			return &cards[i]
		}
	}

	return nil
}

// Reveal applies the top-card guard to a deal and flips the matching card in
// place. The guard must run against the authoritative card sequence, not a
// client's cached copy.
func Reveal(cards []Card, cardID string) bool {
	card := findCard(cards, cardID)
	if card == nil || card.Revealed {
		return false
	}

	top := TopCard(cards)
	if top == nil || top.ID != cardID {
		return false
	}

	card.Revealed = true
	return true
}

func findCard(cards []Card, cardID string) *Card {
	for i := range cards {
		if cards[i].ID == cardID {
			return &cards[i]
		}
	}

	return nil
}
