package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"baralho-server/pkg/game"
	"baralho-server/pkg/protocol"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = time.Minute
)

// Postgres stores rooms in a postgres table and fans events out with
// LISTEN/NOTIFY. Notifications are published inside the mutating transaction,
// so subscribers only ever see committed state.
type Postgres struct {
	db  *sql.DB
	dsn string
}

// NewPostgres returns a postgres-backed store
// The DSN is used to open dedicated listener connections for subscriptions.
func NewPostgres(db *sql.DB, dsn string) *Postgres {
	return &Postgres{
		db:  db,
		dsn: dsn,
	}
}

func channelName(code string) string {
	return "room_events_" + code
}

// CreateRoom stores a brand-new room
func (p *Postgres) CreateRoom(ctx context.Context, state game.State) error {
	cards, err := json.Marshal(state.Cards)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, `INSERT INTO rooms (code, cards) VALUES ($1, $2)`, state.Code, string(cards))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return ErrCodeTaken
		}

		return err
	}

	return nil
}

// Room returns the current snapshot for a room code
func (p *Postgres) Room(ctx context.Context, code string) (game.State, error) {
	row := p.db.QueryRowContext(ctx, `SELECT cards FROM rooms WHERE code = $1`, code)
	cards, err := scanCards(row)
	if err != nil {
		return game.State{}, err
	}

	return game.State{
		Code:  code,
		Cards: cards,
	}, nil
}

// RevealCard atomically applies the top-card guard and flips the card.
// The row is locked for the duration of the guard, so two racing clients
// cannot both reveal the same card.
func (p *Postgres) RevealCard(ctx context.Context, code, cardID string) (bool, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer rollback(tx)

	row := tx.QueryRowContext(ctx, `SELECT cards FROM rooms WHERE code = $1 FOR UPDATE`, code)
	cards, err := scanCards(row)
	if err != nil {
		return false, err
	}

	if !game.Reveal(cards, cardID) {
		return false, nil
	}

	if err := updateCards(ctx, tx, code, cards); err != nil {
		return false, err
	}

	err = notify(ctx, tx, code, &protocol.Response{
		Key:   protocol.KeyCardRevealed,
		Value: cardID,
	})
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// ResetRoom replaces a room's card sequence with a fresh deal
func (p *Postgres) ResetRoom(ctx context.Context, code string, cards []game.Card) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollback(tx)

	row := tx.QueryRowContext(ctx, `SELECT cards FROM rooms WHERE code = $1 FOR UPDATE`, code)
	if _, err := scanCards(row); err != nil {
		return err
	}

	if err := updateCards(ctx, tx, code, cards); err != nil {
		return err
	}

	err = notify(ctx, tx, code, &protocol.Response{
		Key: protocol.KeyRoomState,
		Data: game.State{
			Code:  code,
			Cards: cards,
		},
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Subscribe opens a dedicated listener connection for the room's channel
func (p *Postgres) Subscribe(code string) (Subscription, error) {
	listener := pq.NewListener(p.dsn, minReconnectInterval, maxReconnectInterval, nil)
	if err := listener.Listen(channelName(code)); err != nil {
		_ = listener.Close()
		return nil, err
	}

	sub := &pgSubscription{
		listener: listener,
		events:   make(chan *protocol.Response, 256),
	}

	go sub.forward()
	return sub, nil
}

type pgSubscription struct {
	listener *pq.Listener
	events   chan *protocol.Response
}

func (s *pgSubscription) Events() <-chan *protocol.Response {
	return s.events
}

func (s *pgSubscription) Close() {
	_ = s.listener.Close()
}

func (s *pgSubscription) forward() {
	defer close(s.events)

	for notification := range s.listener.Notify {
		// a nil notification marks a re-established connection
		if notification == nil {
			continue
		}

		var res protocol.Response
		if err := json.Unmarshal([]byte(notification.Extra), &res); err != nil {
			logrus.WithError(err).WithField("channel", notification.Channel).Error("could not parse notification")
			continue
		}

		select {
		case s.events <- &res:
		default:
			logrus.WithField("channel", notification.Channel).Warn("subscriber buffer full, dropping event")
		}
	}
}

func scanCards(row *sql.Row) ([]game.Card, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, game.ErrRoomNotFound
		}

		return nil, err
	}

	var cards []game.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("could not parse stored cards: %w", err)
	}

	return cards, nil
}

func updateCards(ctx context.Context, tx *sql.Tx, code string, cards []game.Card) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE rooms SET cards = $2 WHERE code = $1`, code, string(raw))
	return err
}

func notify(ctx context.Context, tx *sql.Tx, code string, res *protocol.Response) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, channelName(code), string(payload))
	return err
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		logrus.WithError(err).Error("could not roll back transaction")
	}
}
