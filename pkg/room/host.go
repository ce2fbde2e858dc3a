package room

import (
	"sync"

	"baralho-server/pkg/game"
	"baralho-server/pkg/protocol"

	"github.com/sirupsen/logrus"
)

// Host owns a single room. All reads and writes of the room state happen on
// the host's run loop, so the reveal guard's read-then-write is atomic with
// respect to every other event in the room.
type Host struct {
	doorman *Doorman
	room    *game.Room
	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
}

// NewHost creates a new host for the given room
// This is called from a blocking state, so it needs to return quickly
func NewHost(doorman *Doorman, room *game.Room) *Host {
	return &Host{
		doorman:       doorman,
		room:          room,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Code returns the room code
func (h *Host) Code() string {
	return h.room.Code
}

// Clients will return a slice of connected (at the time) clients
func (h *Host) Clients() []*Client {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (h *Host) StartShift() {
	go h.runLoop()
}

func (h *Host) runLoop() {
	log := logrus.WithField("code", h.room.Code)

	log.Debug("creating host run loop")
	for {
		select {
		case fn := <-h.execInRunLoop:
			fn()
		case <-h.close:
			log.Debug("terminating host run loop")
			return
		}
	}
}

// AddClient adds a client, sends it the current room snapshot, and broadcasts
// the new player count
// This method must return quickly
func (h *Host) AddClient(client *Client) {
	h.lock.Lock()
	client.host = h
	h.clients[client] = true
	h.lock.Unlock()

	h.execInRunLoop <- func() {
		h.room.PlayerCount++
		client.Send(&protocol.Response{
			Key:  protocol.KeyRoomState,
			Data: h.room.State(),
		})

		h.broadcast(&protocol.Response{
			Key:  protocol.KeyPlayerCount,
			Data: h.room.PlayerCount,
		})
	}
}

// RemoveClient removes a client and broadcasts the new player count
// If the client was the last one in the room, true is returned and the host
// should be shut down by the caller
// This method must return quickly
func (h *Host) RemoveClient(client *Client) (lastClient bool) {
	h.lock.Lock()
	delete(h.clients, client)
	nClients := len(h.clients)
	h.lock.Unlock()

	if nClients > 0 {
		h.execInRunLoop <- func() {
			h.room.PlayerCount--
			h.broadcast(&protocol.Response{
				Key:  protocol.KeyPlayerCount,
				Data: h.room.PlayerCount,
			})
		}

		return false
	}

	return true
}

// EndShift is called when the host is no longer needed
func (h *Host) EndShift() {
	close(h.close)
}

// State returns a snapshot of the room, taken on the run loop
func (h *Host) State() (game.State, error) {
	reply := make(chan game.State, 1)
	h.execInRunLoop <- func() {
		reply <- h.room.State()
	}

	select {
	case state := <-reply:
		return state, nil
	case <-h.close:
		return game.State{}, game.ErrRoomNotFound
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (h *Host) ReceivedMessage(c *Client, msg *protocol.PayloadIn) {
	switch msg.Action {
	case protocol.ActionRevealCard:
		cardID := msg.CardID
		h.execInRunLoop <- func() {
			if !h.room.Reveal(cardID) {
				// duplicate and out-of-order reveals are dropped without a broadcast
				logrus.WithFields(logrus.Fields{
					"code":   h.room.Code,
					"cardId": cardID,
					"client": c.String(),
				}).Debug("rejected reveal")
				return
			}

			logrus.WithFields(logrus.Fields{
				"code":   h.room.Code,
				"cardId": cardID,
			}).Debug("card revealed")

			h.broadcast(&protocol.Response{
				Key:   protocol.KeyCardRevealed,
				Value: cardID,
			})
		}
	case protocol.ActionReset:
		ctx := msg.Context
		h.execInRunLoop <- func() {
			h.room.Reset()
			logrus.WithField("code", h.room.Code).Debug("room reset")

			h.broadcast(&protocol.Response{
				Key:     protocol.KeyRoomState,
				Data:    h.room.State(),
				Context: ctx,
			})
		}
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
	}
}

// NOTE: must only be called from the run loop
func (h *Host) broadcast(res *protocol.Response) {
	for _, client := range h.Clients() {
		if !client.Send(res) {
			logrus.WithField("client", client.String()).Warn("send buffer full, dropping message")
		}
	}
}
