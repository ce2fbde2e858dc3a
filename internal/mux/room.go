package mux

import (
	"context"
	"errors"
	"net/http"

	"baralho-server/pkg/game"
	"baralho-server/pkg/store"

	gmux "github.com/gorilla/mux"
)

// errCodesExhausted is surfaced to the requesting user only; nobody else is
// affected by a failed allocation
var errCodesExhausted = errors.New("could not allocate a free room code")

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := m.createRoom(r.Context())
		if err != nil {
			if err == errCodesExhausted {
				writeJSONError(w, http.StatusServiceUnavailable, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, state)
	}
}

func (m *Mux) createRoom(ctx context.Context) (game.State, error) {
	if m.doorman != nil {
		return m.doorman.CreateRoom(), nil
	}

	// the store is shared with other server instances, so a freshly drawn
	// code can lose the insert race; retry a bounded number of times
	for i := 0; i < m.codeAttempts; i++ {
		state := game.NewRoom(game.NewCode(m.rnd), m.catalog).State()
		err := m.store.CreateRoom(ctx, state)
		if err == nil {
			return state, nil
		}

		if err != store.ErrCodeTaken {
			return game.State{}, err
		}
	}

	return game.State{}, errCodesExhausted
}

func (m *Mux) getRoom() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := game.NormalizeCode(gmux.Vars(r)["code"])

		state, err := m.roomState(r.Context(), code)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	})
}

func (m *Mux) roomState(ctx context.Context, code string) (game.State, error) {
	if m.doorman != nil {
		return m.doorman.Room(code)
	}

	return m.store.Room(ctx, code)
}
