package api

import (
	"embed"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"
)

//go:embed viewer.html
var pages embed.FS

// Api serves the viewer page, the frame images, and the websocket.
type Api struct {
	session *Session
	hub     *Hub
}

// NewApi creates an instance of an Api.
func NewApi(session *Session, hub *Hub) *Api {
	a := new(Api)
	a.session = session
	a.hub = hub
	return a
}

// Serve listens on addr until the listener fails.
func (a *Api) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleIndex)
	mux.HandleFunc("/frames/", a.handleFrame)
	mux.HandleFunc("/ws", a.hub.HandleWS)

	log.Printf("Listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (a *Api) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := pages.ReadFile("viewer.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleFrame serves one frame PNG-encoded. The browser fetches each
// index once and caches it; paints then reference indices only.
func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/frames/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f, ok := a.session.Frame(idx)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	if err := png.Encode(w, f.Image()); err != nil {
		log.Printf("api: encode frame %d: %v", idx, err)
	}
}
