package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"baralho-server/pkg/catalog"
	"baralho-server/pkg/game"
	"baralho-server/pkg/protocol"
	"baralho-server/pkg/room"
	"baralho-server/pkg/store"

	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

// memoryMux returns a mux backed by an in-process doorman
func memoryMux(version string) *Mux {
	entries := catalog.Default()
	doorman := room.NewDoorman(entries)
	doorman.StartShift()
	return newMux(version, entries, doorman, nil)
}

// storeMux returns a mux backed by the given store
func storeMux(s store.Store) *Mux {
	return newMux("", catalog.Default(), nil, s)
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	resp := assertDo(t, req, respObj, statusCode)
	if resp != nil {
		_ = resp.Body.Close()
	}
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Error(err)
			return
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp := assertDo(t, req, respObj, statusCode)
	if resp != nil {
		_ = resp.Body.Close()
	}
}

// fakeStore is an in-memory stand-in for the document store
type fakeStore struct {
	mu        sync.Mutex
	rooms     map[string]game.State
	createErr error

	events    chan *protocol.Response
	closeOnce sync.Once
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:  make(map[string]game.State),
		events: make(chan *protocol.Response, 16),
	}
}

func (f *fakeStore) CreateRoom(_ context.Context, state game.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	if _, found := f.rooms[state.Code]; found {
		return store.ErrCodeTaken
	}

	f.rooms[state.Code] = state
	return nil
}

func (f *fakeStore) Room(_ context.Context, code string) (game.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, found := f.rooms[code]
	if !found {
		return game.State{}, game.ErrRoomNotFound
	}

	return state, nil
}

func (f *fakeStore) RevealCard(_ context.Context, code, cardID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, found := f.rooms[code]
	if !found {
		return false, game.ErrRoomNotFound
	}

	if !game.Reveal(state.Cards, cardID) {
		return false, nil
	}

	f.rooms[code] = state
	f.events <- &protocol.Response{
		Key:   protocol.KeyCardRevealed,
		Value: cardID,
	}

	return true, nil
}

func (f *fakeStore) ResetRoom(_ context.Context, code string, cards []game.Card) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, found := f.rooms[code]
	if !found {
		return game.ErrRoomNotFound
	}

	state.Cards = cards
	f.rooms[code] = state
	f.events <- &protocol.Response{
		Key:  protocol.KeyRoomState,
		Data: state,
	}

	return nil
}

func (f *fakeStore) Subscribe(string) (store.Subscription, error) {
	return f, nil
}

func (f *fakeStore) Events() <-chan *protocol.Response {
	return f.events
}

func (f *fakeStore) Close() {
	f.closeOnce.Do(func() {
		close(f.events)
	})
}
