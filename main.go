package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/zardoy/pixi-sprite-preview/api"
	"github.com/zardoy/pixi-sprite-preview/input"
	"github.com/zardoy/pixi-sprite-preview/play"
	"github.com/zardoy/pixi-sprite-preview/util"
)

type app struct {
	Config   play.Config
	Session  *api.Session
	Hub      *api.Hub
	Streamer *api.Streamer
}

func newApp() *app {
	a := new(app)
	a.Config = play.DefaultConfig()
	return a
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&a.Config)
	if err != nil {
		panic(err)
	}
}

// load builds a frame store from the source folder. Fatal load
// failures (nothing decodable, unresolved atlas) abort here; per-file
// failures were already logged and skipped by the loader.
func (a *app) load(dir string) *play.Store {
	sources, err := input.Load(dir)
	if err != nil {
		log.Fatalf("load %s: %v", dir, err)
	}
	store, err := play.Load(sources)
	if err != nil {
		log.Fatalf("load %s: %v", dir, err)
	}
	return store
}

// reload rebuilds the store after the watcher saw the folder change.
// Unlike startup, a failed reload keeps the current sequence.
func (a *app) reload(dir string) {
	sources, err := input.Load(dir)
	if err != nil {
		log.Printf("reload %s: %v", dir, err)
		return
	}
	store, err := play.Load(sources)
	if err != nil {
		log.Printf("reload %s: %v", dir, err)
		return
	}
	log.Printf("reloaded %d frames from %s", store.Size(), dir)
	a.Session.Reload(store)
	a.Hub.AnnounceReload()
}

func main() {
	configPath := flag.String("config", "", "YAML config file.")
	dir := flag.String("dir", ".", "Folder holding the image sequence or atlas+manifest.")
	addr := flag.String("addr", "", "Listen address, overrides config.")
	fps := flag.Float64("fps", 0, "Initial frame rate, overrides config.")
	flag.Parse()

	a := newApp()
	if *configPath != "" {
		a.readConfig(*configPath)
	}
	if *addr != "" {
		a.Config.Serve.Addr = *addr
	}
	if *fps > 0 {
		a.Config.Playback.FPS = *fps
	}
	log.Printf("Config: %+v", a.Config)

	store := a.load(*dir)
	log.Printf("loaded %d frames from %s", store.Size(), *dir)

	easing := util.EasingByName(a.Config.Playback.Easing)
	a.Session = api.NewSession(store, a.Config, easing)
	a.Hub = api.NewHub(a.Session)
	a.Streamer = api.NewStreamer(a.Session, a.Hub, 16*time.Millisecond)

	if a.Config.Watch {
		w, err := input.Watch(*dir, 250*time.Millisecond, func() { a.reload(*dir) })
		if err != nil {
			log.Fatalf("watch %s: %v", *dir, err)
		}
		defer w.Close()
	}

	go func() {
		srv := api.NewApi(a.Session, a.Hub)
		if err := srv.Serve(a.Config.Serve.Addr); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.Streamer.Run(ctx)
	a.Session.Reset()
}
