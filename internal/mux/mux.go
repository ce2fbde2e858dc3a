package mux

import (
	"net/http"

	"baralho-server/internal/config"
	"baralho-server/internal/rng"
	"baralho-server/pkg/catalog"
	"baralho-server/pkg/db"
	"baralho-server/pkg/room"
	"baralho-server/pkg/store"

	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	catalog []*catalog.Entry
	rnd     rng.Generator

	// exactly one of doorman and store is set, depending on the configured
	// backend; the two shapes are never composed
	doorman *room.Doorman
	store   store.Store

	// codeAttempts bounds room-code allocation retries against the store
	codeAttempts int
}

// NewMux returns a new HTTP mux for the configured backend
func NewMux(version string, entries []*catalog.Entry) *Mux {
	var doorman *room.Doorman
	var roomStore store.Store

	if config.Instance().Backend == config.BackendPostgres {
		roomStore = store.NewPostgres(db.Instance(), db.DSN())
	} else {
		doorman = room.NewDoorman(entries)
		doorman.StartShift()
	}

	return newMux(version, entries, doorman, roomStore)
}

// newMux wires the routes for the given backend
// Split out from NewMux so tests can supply their own backend.
func newMux(version string, entries []*catalog.Entry, doorman *room.Doorman, roomStore store.Store) *Mux {
	this := &Mux{
		Router:       gmux.NewRouter(),
		version:      version,
		catalog:      entries,
		rnd:          rng.Crypto{},
		doorman:      doorman,
		store:        roomStore,
		codeAttempts: config.Instance().CodeAttempts,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

	rr := r.PathPrefix("/room/{code:(?i)[a-z0-9]{6}}").Subrouter()
	rr.Methods(http.MethodGet).Path("").Handler(this.getRoom())
	rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomWS())
	rr.Methods(http.MethodGet).Path("/qr").Handler(this.getRoomQR())

	return this
}
