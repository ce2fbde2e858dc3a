package mux

import (
	"net/http"

	"baralho-server/pkg/game"

	gmux "github.com/gorilla/mux"
	"github.com/skip2/go-qrcode"
)

// qrSize is mobile-friendly
const qrSize = 320

// getRoomQR serves a PNG QR code pointing at the room's join URL
func (m *Mux) getRoomQR() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := game.NormalizeCode(gmux.Vars(r)["code"])
		if _, err := m.roomState(r.Context(), code); err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		// derive the scheme, respecting TLS and X-Forwarded-Proto
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + "/room/" + code

		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})
}
