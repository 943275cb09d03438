// Command seqsim plays one program headlessly and reports what its player
// does, frame by frame, without waiting for wall-clock time.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-holidaylights/internal/app"
	"github.com/coreman2200/funtimes-holidaylights/internal/config"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes"
	"github.com/coreman2200/funtimes-holidaylights/internal/led"
	"github.com/coreman2200/funtimes-holidaylights/internal/program"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional config.yaml with extra programs")
		name       = flag.String("program", program.NameXMas, "program to play")
		seconds    = flag.Float64("seconds", 60, "simulated duration")
		fps        = flag.Int("fps", 30, "simulated frames per second")
		count      = flag.Int("count", 50, "number of LEDs")
		console    = flag.Bool("console", false, "draw frames on the console in real time")
		list       = flag.Bool("list", false, "list programs and effects, then exit")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg := config.Default()
	if *configPath != "" {
		if err := config.Read(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Msg("config")
		}
	}
	cfg.Count = *count
	cfg.Layout = config.Layout{}

	reg := scenes.Default()
	_, variants, err := app.Programs(cfg, reg)
	if err != nil {
		log.Fatal().Err(err).Msg("programs")
	}
	if *list {
		names := make([]string, 0, len(variants))
		for n := range variants {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Println("programs:", names)
		fmt.Println("effects: ", reg.List())
		return
	}
	v, ok := variants[*name]
	if !ok {
		log.Fatal().Str("program", *name).Msg("unknown program")
	}

	sim := led.NewSim()
	var out led.Driver = sim
	if *console {
		out = led.Fanout{sim, led.NewConsole(cfg.Count)}
	}
	defer out.Close()
	strip := led.NewStrip(out, led.Options{Layout: cfg.StripLayout(), Brightness: 1})
	r := program.NewRunner(strip)
	p := v.New()
	r.Start(p, true)

	var player *sequence.Player
	if l, ok := p.(*program.Loop); ok {
		player = l.Player()
	}
	dt := 1 / float64(max(*fps, 1))
	frames := int(*seconds / dt)
	var last sequence.PlayerState
	for f := 0; f < frames; f++ {
		if err := r.Update(dt); err != nil {
			log.Fatal().Err(err).Msg("frame")
		}
		if player != nil && player.State != last {
			last = player.State
			fmt.Printf("t=%7.2fs frame=%5d state=%-13v effect=%d ratio=%.2f\n",
				float64(f+1)*dt, f+1, player.State, player.Index(), player.Ratio())
		}
		if *console {
			time.Sleep(time.Duration(dt * float64(time.Second)))
		}
	}
	fmt.Printf("%s: %d frames, last=% x\n", v.Name, sim.Frames(), sim.Last()[:min(12, len(sim.Last()))])
}
