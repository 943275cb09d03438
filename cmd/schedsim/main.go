// Command schedsim prints when the schedule switches programs over a range of
// days.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-holidaylights/internal/app"
	"github.com/coreman2200/funtimes-holidaylights/internal/config"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional config.yaml")
		from       = flag.String("from", time.Now().Format(time.DateOnly), "first day (YYYY-MM-DD)")
		days       = flag.Int("days", 90, "number of days to cover")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if *configPath != "" {
		if err := config.Read(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Msg("config")
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sched, _, err := app.Programs(cfg, scenes.Default())
	if err != nil {
		log.Fatal().Err(err).Msg("programs")
	}
	start, err := time.ParseInLocation(time.DateOnly, *from, time.Local)
	if err != nil {
		log.Fatal().Err(err).Msg("-from")
	}
	stop := start.AddDate(0, 0, *days)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tPROGRAM\tNEXT CHECK")
	prev := "?"
	for now := start; now.Before(stop); {
		slot := sched.Check(now)
		name := "-"
		if slot.Variant != nil {
			name = slot.Variant.Name
		}
		if name != prev {
			fmt.Fprintf(w, "%s\t%s\t%s\n", now.Format("Mon 2006-01-02 15:04"), name, slot.Next.Format("Mon 2006-01-02 15:04"))
			prev = name
		}
		if !slot.Next.After(now) {
			break
		}
		now = slot.Next
	}
	w.Flush()
}
