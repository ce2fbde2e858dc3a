package mux

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"baralho-server/pkg/catalog"
	"baralho-server/pkg/game"
	"baralho-server/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestMux_postRoom(t *testing.T) {
	ts := httptest.NewServer(memoryMux(""))
	defer ts.Close()

	var state game.State
	assertPost(t, ts, "/room", nil, &state, 201)

	assert.True(t, game.ValidCode(state.Code))
	assert.Equal(t, len(catalog.Default()), len(state.Cards))
	assert.Equal(t, 0, state.PlayerCount)
	for _, card := range state.Cards {
		assert.False(t, card.Revealed)
	}
}

func TestMux_getRoom(t *testing.T) {
	ts := httptest.NewServer(memoryMux(""))
	defer ts.Close()

	var created game.State
	assertPost(t, ts, "/room", nil, &created, 201)

	var state game.State
	assertGet(t, ts, "/room/"+created.Code, &state, 200)
	assert.Equal(t, created, state)

	// lookups are case-insensitive
	state = game.State{}
	assertGet(t, ts, "/room/"+strings.ToLower(created.Code), &state, 200)
	assert.Equal(t, created.Code, state.Code)

	var errObj errorResponse
	assertGet(t, ts, "/room/ZZZZZ0", &errObj, 404)
	assert.Equal(t, game.ErrRoomNotFound.Error(), errObj.Message)

	// a malformed code never reaches the handler
	assertGet(t, ts, "/room/nope", nil, 404)
}

func TestMux_postRoom_store(t *testing.T) {
	s := newFakeStore()
	ts := httptest.NewServer(storeMux(s))
	defer ts.Close()

	var state game.State
	assertPost(t, ts, "/room", nil, &state, 201)
	assert.True(t, game.ValidCode(state.Code))

	stored, err := s.Room(cbg, state.Code)
	assert.NoError(t, err)
	assert.Equal(t, state, stored)

	var got game.State
	assertGet(t, ts, "/room/"+state.Code, &got, 200)
	assert.Equal(t, state, got)
}

func TestMux_postRoom_storeExhausted(t *testing.T) {
	s := newFakeStore()
	s.createErr = store.ErrCodeTaken
	ts := httptest.NewServer(storeMux(s))
	defer ts.Close()

	var errObj errorResponse
	assertPost(t, ts, "/room", nil, &errObj, 503)
	assert.Equal(t, "Service Unavailable", errObj.Message)
}

func TestMux_postRoom_storeError(t *testing.T) {
	s := newFakeStore()
	s.createErr = errors.New("connection refused")
	ts := httptest.NewServer(storeMux(s))
	defer ts.Close()

	var errObj errorResponse
	assertPost(t, ts, "/room", nil, &errObj, 500)
	assert.Equal(t, "Internal Server Error", errObj.Message)
}
