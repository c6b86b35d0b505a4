package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/uoc-tools/timeline/internal/app"
	"github.com/uoc-tools/timeline/internal/commands"
	"github.com/uoc-tools/timeline/internal/notify"
	"github.com/uoc-tools/timeline/internal/portal"
)

func main() {
	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "check-config" {
		commands.CheckConfig(os.Args[2:])
		return
	}

	// Parse flags
	configPath := flag.String("config", app.DefaultConfigFile, "Path to config file")
	sortField := flag.String("sort", app.DefaultSortField, "Timeline sort field (start_date, due_date, days, name, type, classroom)")
	noNotify := flag.Bool("no-notify", false, "Disable desktop notifications")
	flag.Parse()

	// Load and validate config; any failure here aborts before the
	// browser starts and no output files are touched.
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	password := cfg.Password
	if password == "" {
		password = commands.ReadPassword("Campus password: ")
	}

	session, err := portal.NewSession(cfg.ChromePath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer session.Close()

	if err := session.Login(cfg.Username, password); err != nil {
		log.Fatalf("%v", err)
	}

	classrooms := cfg.Classrooms()
	today := app.Today(time.Now())

	// Timeline pipeline: extract, sort, export. Per-record and
	// per-classroom failures are already logged and skipped inside.
	timeline, skips := app.BuildTimeline(session, classrooms, today)
	if len(skips) > 0 {
		log.Printf("Timeline built with %d activities (%d skipped)", timeline.Len(), len(skips))
	}
	entries := app.SortedEntries(timeline, *sortField)
	if err := app.ExportAll(entries, cfg.ClassroomColors, today); err != nil {
		log.Fatalf("Failed to write timeline files: %v", err)
	}

	// Message pipeline
	var notifier app.Notifier = notify.NewDesktop(app.NotifyAppName, app.NotifyTimeout)
	if *noNotify {
		notifier = notify.Nop{}
	}
	app.CollectMessages(session, classrooms, notifier, os.Stdout)
}
