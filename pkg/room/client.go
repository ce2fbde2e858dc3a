package room

import (
	"fmt"

	"baralho-server/pkg/protocol"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a viewer connected to the server via websockets
type Client struct {
	// ID identifies the connection in logs
	ID string

	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	// send is a channel for sending messages to the client
	send chan interface{}

	host     *Host
	roomCode string
}

// NewClient returns a new client object for the given room code
func NewClient(conn *websocket.Conn, roomCode string) *Client {
	return &Client{
		ID:       uuid.New().String(),
		Conn:     conn,
		Close:    make(chan string, 1),
		send:     make(chan interface{}, 256),
		roomCode: roomCode,
	}
}

// RoomCode returns the code of the room the client asked to join
func (c *Client) RoomCode() string {
	return c.roomCode
}

// Send queues a message for the client
// It returns false if the client's send buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of queued messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the connection and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.ID, c.roomCode)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *protocol.PayloadIn) {
	if c.host == nil {
		logrus.WithField("msg", msg).Warn("received message, but host not found")
		return
	}

	c.host.ReceivedMessage(c, msg)
}
