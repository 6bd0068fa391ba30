package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"planner/internal/agenda"
	"planner/internal/config"
	"planner/internal/expand"
	"planner/internal/ics"
	appLog "planner/internal/log"
	"planner/internal/model"
	"planner/internal/store"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	itemsPath  string
	from       string
	days       int
	icsPath    string
	watch      bool
	debug      bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.itemsPath != "" {
		conf.Items = flags.itemsPath
	}
	if flags.days > 0 {
		conf.HorizonDays = flags.days
	}

	loc := time.Local
	if conf.Timezone != "" && conf.Timezone != "Local" {
		l, err := time.LoadLocation(conf.Timezone)
		if err != nil {
			appLog.Error("invalid timezone in config", err, "timezone", conf.Timezone)
			os.Exit(1)
		}
		loc = l
	}

	var fixedStart time.Time
	if flags.from != "" {
		t, err := time.ParseInLocation("2006-01-02", flags.from, loc)
		if err != nil {
			appLog.Error("invalid -from date", err, "from", flags.from)
			os.Exit(1)
		}
		fixedStart = t
	}

	render := func() {
		windowStart, windowEnd := window(fixedStart, time.Now().In(loc), conf.HorizonDays)
		items := loadItems(conf.Items)
		occs, errs := expand.ExpandItems(items, windowStart, windowEnd)
		for _, e := range errs {
			appLog.Error("item skipped during expansion", e)
		}

		style := agenda.Style{TwelveHour: conf.ClockStyle == "12", Location: loc}
		fmt.Print(agenda.Render(occs, style, time.Now()))

		if flags.icsPath != "" {
			payload := ics.Export(occs, time.Now())
			if err := os.WriteFile(flags.icsPath, []byte(payload), 0o600); err != nil {
				appLog.Error("failed to write ics feed", err, "path", flags.icsPath)
			}
		}
	}

	render()

	if !flags.watch {
		return
	}
	if conf.WatchCron == "" {
		appLog.Error("watch mode requires a watch schedule in config", nil)
		os.Exit(1)
	}

	c := cron.New()
	if _, err := c.AddFunc(conf.WatchCron, render); err != nil {
		appLog.Error("invalid watch schedule", err, "watch", conf.WatchCron)
		os.Exit(1)
	}
	c.Start()
	appLog.Info("watch mode started", "schedule", conf.WatchCron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLog.Info("signal received, shutting down", "signal", sig.String())
	<-c.Stop().Done()
}

// window returns the expansion window for one render. A zero fixedStart
// means the window begins at local midnight of now, so a long-running watch
// session rolls over to the new day on its next render instead of reusing
// the window computed at startup.
func window(fixedStart, now time.Time, days int) (time.Time, time.Time) {
	start := fixedStart
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return start, start.AddDate(0, 0, days).Add(-time.Nanosecond)
}

// loadItems reads and parses the item file, skipping records that fail
// validation so one bad item does not hide the rest.
func loadItems(path string) []model.Item {
	raws, err := store.Load(path)
	if err != nil {
		appLog.Error("failed to load items", err, "path", path)
		return nil
	}
	items := make([]model.Item, 0, len(raws))
	for n, raw := range raws {
		item, err := store.ParseItem(raw)
		if err != nil {
			appLog.Error("invalid item skipped", err, "index", n)
			continue
		}
		items = append(items, *item)
	}
	appLog.Info("items loaded", "path", path, "count", len(items))
	return items
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "planner.yaml", "Path to config file")
	flag.StringVar(&cfg.itemsPath, "items", "", "Path to item file (overrides config if set)")
	flag.StringVar(&cfg.from, "from", "", "Window start date (YYYY-MM-DD, default today)")
	flag.IntVar(&cfg.days, "days", 0, "Window length in days (overrides config if set)")
	flag.StringVar(&cfg.icsPath, "ics", "", "Also write an iCalendar feed to this path")
	flag.BoolVar(&cfg.watch, "watch", false, "Re-render on the configured cron schedule")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
