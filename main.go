package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"invoicesearch/internal/config"
	"invoicesearch/internal/eventbus"
	"invoicesearch/internal/invoice"
	"invoicesearch/internal/searchclient"
	"invoicesearch/internal/ui"
	"invoicesearch/internal/ui/photo"
)

func main() {
	var (
		configPath  string
		endpoint    string
		status      string
		protocol    string
		noMouse     bool
		writeConfig bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default: user config dir)")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.StringVar(&endpoint, "endpoint", "", "Search endpoint URL, overrides the config")
	flag.StringVar(&status, "status", "", "Initial invoice status: draft, finalized or voided")
	flag.StringVar(&protocol, "image-protocol", "", "Thumbnail protocol: halfblocks, kitty, iterm2, sixel or none")
	flag.BoolVar(&noMouse, "no-mouse", false, "Disable mouse support")
	flag.BoolVar(&writeConfig, "write-config", false, "Write the effective config to the config path and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\nInvoice line form with backend search dialogs.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("invoicesearch.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Set up event forwarding to UI. Subscribed before the config loads so
	// ConfigLoaded waits in the channel until the program is running.
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventConfigLoaded, forward)
	bus.Subscribe(eventbus.EventInvoiceStateChanged, forward)
	bus.Subscribe(eventbus.EventConfigSaved, func(eventbus.DomainEvent) {
		log.Printf("Config saved")
	})

	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.LoadWith(func(c *config.Config) {
		applyOverrides(c, endpoint, status, protocol, noMouse)
	})
	if err != nil {
		log.Printf("Error loading config %s: %v", configSvc.Path(), err)
		fmt.Fprintf(os.Stderr, "Error loading config %s: %v\n", configSvc.Path(), err)
		os.Exit(1)
	}

	if writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", configSvc.Path())
		return
	}

	initial, err := invoice.ParseStatus(cfg.InvoiceStatus)
	if err != nil {
		log.Printf("Invalid invoice status %q, using draft: %v", cfg.InvoiceStatus, err)
		initial = invoice.Draft
	}
	statusCell := invoice.NewStatusCell(initial)

	client := searchclient.New(cfg.Endpoint, searchclient.WithTimeout(time.Duration(cfg.Timeout)))
	log.Printf("Searching against %s", client.Endpoint())

	var zones *zone.Manager
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UISettings.Mouse {
		zones = zone.New()
		defer zones.Close()
		opts = append(opts, tea.WithMouseCellMotion())
	}

	uiModel := ui.NewModel(cfg, ui.Deps{
		Bus:      bus,
		Status:   statusCell,
		Searcher: client,
		Zones:    zones,
		Photos:   photo.NewLoader(photo.ParseProtocol(cfg.UISettings.ImageProtocol), nil),
	})

	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	bus.Subscribe(eventbus.EventRowSelected, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.RowSelectedEvent); ok {
			log.Printf("Row selected from %s: %v", ev.Table, ev.Row)
		}
	})
	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("Search on %s failed: %v", ev.Request.Table, ev.Err)
		}
	})

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// External status changes, e.g. `kill -USR1` after the invoice was finalized elsewhere
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGUSR1)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			next := statusCell.Cycle()
			log.Printf("SIGUSR1: invoice is now %s", next)
			bus.Publish(eventbus.InvoiceStateChangedEvent{Status: next})
		}
	}()

	if os.Getenv("INVOICESEARCH_E2E_TEST") == "1" {
		fmt.Print("__READY__")
	}

	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Stop handlers before closing the channel they write to
	bus.Close()
	close(eventChan)
}

// applyOverrides lets command line flags win over the config file
func applyOverrides(cfg *config.Config, endpoint, status, protocol string, noMouse bool) {
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if status != "" {
		cfg.InvoiceStatus = status
	}
	if protocol != "" {
		cfg.UISettings.ImageProtocol = protocol
	}
	if noMouse {
		cfg.UISettings.Mouse = false
	}
}
