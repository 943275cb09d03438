package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-holidaylights/internal/app"
	"github.com/coreman2200/funtimes-holidaylights/internal/config"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes"
	"github.com/coreman2200/funtimes-holidaylights/internal/led"
	"github.com/coreman2200/funtimes-holidaylights/internal/program"
	"github.com/coreman2200/funtimes-holidaylights/internal/ws"
)

func main() {
	def := config.Default()

	// ---- Flags (defaults; config.yaml and the environment override them) ----
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		envPath    = flag.String("env", ".env", "optional .env file")
		driver     = flag.String("driver", def.Driver, "driver: spi | console | term | sim")
		count      = flag.Int("count", def.Count, "number of LEDs")
		brightness = flag.Float64("brightness", def.Brightness, "global brightness 0..1")
		fps        = flag.Int("fps", def.FPS, "target frames per second")
		addr       = flag.String("addr", def.Addr, "HTTP listen address")
		pin        = flag.String("program", "", "run this program regardless of the schedule")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		level      = flag.String("log-level", "info", "trace | debug | info | warn | error")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*level); err != nil {
		log.Warn().Str("level", *level).Msg("unknown log level; using info")
	} else {
		zerolog.SetGlobalLevel(lvl)
	}

	// ---- Effective config: flags < config.yaml < environment ----
	cfg := def
	cfg.Driver, cfg.Count, cfg.Brightness, cfg.FPS, cfg.Addr = *driver, *count, *brightness, *fps, *addr
	if err := config.Read(*configPath, cfg); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	}
	if err := config.ApplyEnv(cfg, *envPath); err != nil {
		log.Fatal().Err(err).Msg("environment")
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Driver == "term" {
		// the terminal belongs to the strip preview now
		log.Info().Msg("term driver: logging disabled")
		log.Logger = log.Output(io.Discard)
	}

	// ---- Outputs ----
	hub := ws.NewHub(cfg.Count, cfg.Driver)
	drv, selected := app.OpenDriver(cfg, hub)
	hub.SetDriver(selected)
	out := led.Fanout{drv, hub}

	core, err := app.InitCore(cfg, scenes.Default(), out)
	if err != nil {
		log.Fatal().Err(err).Msg("programs")
	}
	cond := core.Conductor
	cond.Diag = hub
	cond.OnDecision = func(slot program.Slot) {
		st := ws.Status{Program: core.Runner.Name(), Pinned: core.Runner.Pinned(), OnDuty: slot.OnDuty, Next: slot.Next}
		if slot.Variant != nil {
			st.Program = slot.Variant.Name
		}
		hub.SetStatus(st)
	}
	if *pin != "" {
		v, ok := core.Variants[*pin]
		if !ok {
			log.Fatal().Str("program", *pin).Msg("unknown program")
		}
		cond.Override(v)
		hub.SetStatus(ws.Status{Program: v.Name, Pinned: true})
	}

	// ---- HTTP ----
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(hub.Handler()),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ---- Run conductor & server ----
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = cond.Run(ctx)
	}()
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("driver", selected).Int("count", cfg.Count).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	var quit <-chan struct{}
	if t, ok := drv.(*led.Term); ok {
		quit = t.Done()
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-ch:
		log.Info().Str("signal", s.String()).Msg("shutting down")
	case <-quit:
		log.Info().Msg("quit from terminal")
	}

	cancel()
	<-done
	_ = srv.Close()
	if err := out.Close(); err != nil {
		log.Warn().Err(err).Msg("closing outputs")
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
