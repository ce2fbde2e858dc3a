package game

import (
	"fmt"
	"testing"

	"baralho-server/pkg/catalog"

	"github.com/stretchr/testify/assert"
)

func titles(cards []Card) []string {
	t := make([]string, len(cards))
	for i, card := range cards {
		t[i] = card.Value.Title
	}

	return t
}

func revealedTitleSet(cards []Card) map[string]bool {
	set := make(map[string]bool)
	for _, card := range cards {
		set[card.Value.Title] = true
	}

	return set
}

func TestNewRoom(t *testing.T) {
	a := assert.New(t)

	entries := catalog.Default()
	room := NewRoom("ABC123", entries)

	a.Equal("ABC123", room.Code)
	a.Equal(len(entries), len(room.Cards))
	a.Equal(0, room.PlayerCount)

	for i, card := range room.Cards {
		a.Equal(fmt.Sprintf("card-%d", i), card.ID)
		a.False(card.Revealed)
	}

	a.Equal(revealedTitleSet(NewRoom("XYZ789", entries).Cards), revealedTitleSet(room.Cards))
}

func TestRoom_Shuffle_deterministic(t *testing.T) {
	a := assert.New(t)

	entries := catalog.Default()

	r1 := NewRoom("AAAAAA", entries)
	r1.SetSeed(42)
	r1.Shuffle()

	r2 := NewRoom("BBBBBB", entries)
	r2.SetSeed(42)
	r2.Shuffle()

	a.Equal(titles(r1.Cards), titles(r2.Cards))
}

func TestRoom_Reveal(t *testing.T) {
	a := assert.New(t)

	room := NewRoom("ABC123", catalog.Default())

	// non-top reveals never mutate
	a.False(room.Reveal("card-1"))
	a.False(room.Reveal("card-3"))
	a.False(room.Reveal("no-such-card"))
	for _, card := range room.Cards {
		a.False(card.Revealed)
	}

	// top card succeeds exactly once
	a.True(room.Reveal("card-0"))
	a.True(room.Cards[0].Revealed)
	a.False(room.Reveal("card-0"))

	// the next card is now the top
	a.Equal("card-1", room.TopCard().ID)
	a.False(room.Reveal("card-2"))
	a.True(room.Reveal("card-1"))

	// revealed cards always form a prefix of the deal order
	seenUnrevealed := false
	for _, card := range room.Cards {
		if !card.Revealed {
			seenUnrevealed = true
		} else {
			a.False(seenUnrevealed, "revealed card after an unrevealed one")
		}
	}
}

func TestRoom_Reveal_fullDeck(t *testing.T) {
	a := assert.New(t)

	room := NewRoom("ABC123", catalog.Default())
	for i := range room.Cards {
		a.True(room.Reveal(fmt.Sprintf("card-%d", i)))
	}

	a.Nil(room.TopCard())
	a.False(room.Reveal("card-0"))
	a.False(room.Reveal(fmt.Sprintf("card-%d", len(room.Cards)-1)))
}

func TestRoom_Reset(t *testing.T) {
	a := assert.New(t)

	entries := catalog.Default()
	room := NewRoom("ABC123", entries)

	a.True(room.Reveal("card-0"))
	a.True(room.Reveal("card-1"))
	room.PlayerCount = 3

	before := revealedTitleSet(room.Cards)
	room.Reset()

	a.Equal("ABC123", room.Code)
	a.Equal(3, room.PlayerCount)
	a.Equal(len(entries), len(room.Cards))
	a.Equal(before, revealedTitleSet(room.Cards))

	for i, card := range room.Cards {
		a.Equal(fmt.Sprintf("card-%d", i), card.ID)
		a.False(card.Revealed)
	}

	// two resets in a row each yield a valid deal
	room.Reset()
	a.Equal(len(entries), len(room.Cards))
	a.Equal(before, revealedTitleSet(room.Cards))
}

func TestRoom_State(t *testing.T) {
	a := assert.New(t)

	room := NewRoom("ABC123", catalog.Default())
	room.PlayerCount = 2

	state := room.State()
	a.Equal("ABC123", state.Code)
	a.Equal(2, state.PlayerCount)
	a.Equal(len(room.Cards), len(state.Cards))

	// the snapshot is detached from the live room
	a.True(room.Reveal("card-0"))
	a.False(state.Cards[0].Revealed)
}

func TestReveal_cardSlice(t *testing.T) {
	a := assert.New(t)

	cards := NewRoom("ABC123", catalog.Default()).State().Cards

	a.False(Reveal(cards, "card-2"))
	a.True(Reveal(cards, "card-0"))
	a.True(cards[0].Revealed)
	a.False(Reveal(cards, "card-0"))
	a.Equal("card-1", TopCard(cards).ID)
}
