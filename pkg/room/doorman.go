package room

import (
	"baralho-server/internal/rng"
	"baralho-server/pkg/catalog"
	"baralho-server/pkg/game"
	"baralho-server/pkg/protocol"

	"github.com/sirupsen/logrus"
)

// Doorman owns the table of live rooms and dispatches viewers to hosts.
// The table is only touched on the doorman's run loop.
type Doorman struct {
	catalog []*catalog.Entry
	rnd     rng.Generator
	hosts   map[string]*Host

	create     chan chan game.State
	lookup     chan *lookupRequest
	connect    chan *Client
	disconnect chan *Client
}

type lookupRequest struct {
	code  string
	reply chan *Host
}

// NewDoorman returns a new doorman for the given card catalog
func NewDoorman(entries []*catalog.Entry) *Doorman {
	return &Doorman{
		catalog:    entries,
		rnd:        rng.Crypto{},
		hosts:      make(map[string]*Host),
		create:     make(chan chan game.State, 256),
		lookup:     make(chan *lookupRequest, 256),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the doorman run loop
func (d *Doorman) StartShift() {
	go d.runLoop()
}

func (d *Doorman) runLoop() {
	for {
		select {
		case reply := <-d.create:
			reply <- d.createRoom()
		case req := <-d.lookup:
			req.reply <- d.hosts[req.code]
		case client := <-d.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			host, found := d.hosts[client.roomCode]
			if !found {
				client.Send(protocol.Error("", game.ErrRoomNotFound))
				select {
				case client.Close <- game.ErrRoomNotFound.Error():
				default:
				}

				continue
			}

			host.AddClient(client)
		case client := <-d.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			host, found := d.hosts[client.roomCode]
			if !found {
				continue
			}

			if host.RemoveClient(client) {
				host.EndShift()
				delete(d.hosts, client.roomCode)
				logrus.WithField("code", client.roomCode).Info("room closed")
			}
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Doorman) createRoom() game.State {
	// the collision space is tracked in-process, so keep drawing until a free
	// code turns up
	code := game.NewCode(d.rnd)
	for _, taken := d.hosts[code]; taken; _, taken = d.hosts[code] {
		code = game.NewCode(d.rnd)
	}

	room := game.NewRoom(code, d.catalog)
	host := NewHost(d, room)
	host.StartShift()
	d.hosts[code] = host

	logrus.WithField("code", code).Info("room created")
	return room.State()
}

// CreateRoom creates a room with a fresh unique code and returns its snapshot
func (d *Doorman) CreateRoom() game.State {
	reply := make(chan game.State, 1)
	d.create <- reply
	return <-reply
}

// Room returns a snapshot of the live room with the given code.
// The code is normalized first, so lookups are case-insensitive.
func (d *Doorman) Room(code string) (game.State, error) {
	host := d.host(game.NormalizeCode(code))
	if host == nil {
		return game.State{}, game.ErrRoomNotFound
	}

	return host.State()
}

func (d *Doorman) host(code string) *Host {
	req := &lookupRequest{
		code:  code,
		reply: make(chan *Host, 1),
	}

	d.lookup <- req
	return <-req.reply
}

// ClientConnected is called when a client connects to the server
func (d *Doorman) ClientConnected(client *Client) {
	d.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (d *Doorman) ClientDisconnected(client *Client) {
	d.disconnect <- client
}
