package mux

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"baralho-server/pkg/game"
	"baralho-server/pkg/protocol"
	"baralho-server/pkg/room"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getRoomWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		code := game.NormalizeCode(gmux.Vars(r)["code"])
		if _, err := m.roomState(r.Context(), code); err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn, code)
		if m.doorman != nil {
			m.serveBroadcastClient(client)
		} else {
			m.serveStoreClient(client)
		}
	}
}

// serveBroadcastClient hands the connection to the in-process room table;
// the room's host does all state changes and fan-out
func (m *Mux) serveBroadcastClient(client *room.Client) {
	m.doorman.ClientConnected(client)

	waitForCloseFrame := make(chan bool)
	defer func() {
		m.doorman.ClientDisconnected(client)
		_ = client.Conn.Close()
		close(waitForCloseFrame)
	}()

	go m.webSocketWriteLoop(client, waitForCloseFrame)
	m.webSocketReadLoop(client, client.ReceivedMessage)
}

// serveStoreClient subscribes the connection to the store's notification
// channel for the room; mutations go through the store, which does the fan-out
func (m *Mux) serveStoreClient(client *room.Client) {
	sub, err := m.store.Subscribe(client.RoomCode())
	if err != nil {
		logrus.WithError(err).WithField("client", client.String()).Error("could not subscribe")
		_ = client.Conn.Close()
		return
	}

	state, err := m.store.Room(context.Background(), client.RoomCode())
	if err != nil {
		logrus.WithError(err).WithField("client", client.String()).Error("could not load room")
		sub.Close()
		_ = client.Conn.Close()
		return
	}

	client.Send(&protocol.Response{
		Key:  protocol.KeyRoomState,
		Data: state,
	})

	go func() {
		for res := range sub.Events() {
			client.Send(res)
		}

		// the subscription died; surface a connectivity error locally
		select {
		case client.Close <- "subscription closed":
		default:
		}
	}()

	waitForCloseFrame := make(chan bool)
	defer func() {
		sub.Close()
		_ = client.Conn.Close()
		close(waitForCloseFrame)
	}()

	go m.webSocketWriteLoop(client, waitForCloseFrame)
	m.webSocketReadLoop(client, func(msg *protocol.PayloadIn) {
		m.storeAction(client, msg)
	})
}

func (m *Mux) storeAction(client *room.Client, msg *protocol.PayloadIn) {
	ctx := context.Background()

	switch msg.Action {
	case protocol.ActionRevealCard:
		// rejected reveals are silent; only store-level failures are surfaced
		if _, err := m.store.RevealCard(ctx, client.RoomCode(), msg.CardID); err != nil {
			logrus.WithError(err).WithField("client", client.String()).Error("could not reveal card")
			client.Send(protocol.Error(msg.Context, errors.New("could not reveal card")))
		}
	case protocol.ActionReset:
		cards := game.NewRoom(client.RoomCode(), m.catalog).State().Cards
		if err := m.store.ResetRoom(ctx, client.RoomCode(), cards); err != nil {
			logrus.WithError(err).WithField("client", client.String()).Error("could not reset room")
			client.Send(protocol.Error(msg.Context, errors.New("could not reset room")))
		}
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case msg, ok := <-client.SendChan():
			if !ok {
				return
			}

			msgBytes, _ := json.Marshal(msg)
			logrus.WithField("message", string(msgBytes)).WithField("client", client.String()).Trace("sending message to client")

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(client *room.Client, handle func(*protocol.PayloadIn)) {
	for {
		var msg protocol.PayloadIn
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if !websocket.IsUnexpectedCloseError(err) {
				logrus.WithError(err).Debug("client closed connection")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure) {
				logrus.WithError(err).Error("could not read message")
			}

			client.CloseError = err
			return
		}

		handle(&msg)
	}
}
