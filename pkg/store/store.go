package store

import (
	"context"
	"errors"

	"baralho-server/pkg/game"
	"baralho-server/pkg/protocol"
)

// ErrCodeTaken is returned when another client already claimed the room code
var ErrCodeTaken = errors.New("room code already taken")

// Store persists rooms in a shared document store keyed by room code.
// Consistency and fan-out are delegated to the store: every accepted mutation
// is published on the room's subscription channel, and the reveal guard runs
// inside a single store transaction against the authoritative card sequence.
type Store interface {
	// CreateRoom stores a brand-new room
	CreateRoom(ctx context.Context, state game.State) error

	// Room returns the current snapshot for a room code
	Room(ctx context.Context, code string) (game.State, error)

	// RevealCard atomically applies the top-card guard and flips the card.
	// Rejected reveals return (false, nil) and publish nothing.
	RevealCard(ctx context.Context, code, cardID string) (bool, error)

	// ResetRoom replaces a room's card sequence with a fresh deal
	ResetRoom(ctx context.Context, code string, cards []game.Card) error

	// Subscribe opens a live subscription for a room's events
	Subscribe(code string) (Subscription, error)
}

// Subscription is a live feed of a single room's events. Messages arrive
// ready for the wire; the socket layer forwards them verbatim.
type Subscription interface {
	Events() <-chan *protocol.Response
	Close()
}
