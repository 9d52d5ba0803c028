package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"headlesselect/internal/config"
	"headlesselect/internal/eventbus"
	"headlesselect/internal/items"
	"headlesselect/internal/selectctl"
	"headlesselect/internal/tui"
)

// errNothingChosen is returned when the user quits without choosing
var errNothingChosen = errors.New("nothing chosen")

// options holds the parsed command line
type options struct {
	configPath  string
	logPath     string
	demo        string
	initial     string
	open        bool
	printConfig bool
	itemsPath   string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errNothingChosen) {
			os.Exit(130)
		}
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Set up logging
	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()
	bus.SubscribeAll(func(e eventbus.DomainEvent) {
		// Highlight moves are too frequent to be useful in the log
		if e.Type() != eventbus.EventHighlightChanged {
			log.Printf("Event: %s", e.Type())
		}
	})

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadOrCreateConfig(configSvc, opts.configPath, opts.configPath != config.DefaultFileName)
	if err != nil {
		return err
	}
	if opts.open {
		cfg.StartOpen = true
	}

	if opts.printConfig {
		data, err := cfg.TOML()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	var label string
	switch {
	case opts.itemsPath != "":
		lines, err := items.LoadFile(opts.itemsPath)
		if err != nil {
			return err
		}
		label, err = runSelect(lines, selectctl.Options[string]{}, nil, opts, cfg, bus)
		if err != nil {
			return err
		}
	case opts.demo == "fruits":
		label, err = runSelect(items.Fruits(), selectctl.Options[string]{}, nil, opts, cfg, bus)
		if err != nil {
			return err
		}
	case opts.demo == "countries":
		label, err = runSelect(items.Countries(), selectctl.Options[items.Country]{
			ItemToString: items.CountryName,
			ItemKey:      items.CountryCode,
		}, items.CountryDisplay, opts, cfg, bus)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown demo %q: want countries or fruits", opts.demo)
	}

	_, err = fmt.Fprintln(stdout, label)
	return err
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}

	flagSet := pflag.NewFlagSet("headlesselect", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.configPath, "config", "c", config.DefaultFileName, "path to the TOML config file")
	flagSet.StringVar(&opts.logPath, "log-file", "headlesselect.log", "file to append log output to")
	flagSet.StringVar(&opts.demo, "demo", "countries", "built-in item list when no file is given (countries, fruits)")
	flagSet.StringVar(&opts.initial, "select", "", "label of the initially selected item")
	flagSet.BoolVar(&opts.open, "open", false, "start with the list open")
	flagSet.BoolVar(&opts.printConfig, "print-config", false, "print the effective config and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: headlesselect [flags] [file|-]\n\nReads one item per line from file, or stdin for \"-\".\nPrints the chosen item on stdout.\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	switch rest := flagSet.Args(); len(rest) {
	case 0:
	case 1:
		opts.itemsPath = rest[0]
	default:
		return nil, fmt.Errorf("unexpected argument: %s", rest[1])
	}
	return opts, nil
}

// loadOrCreateConfig loads the config at path. A missing file yields the
// defaults, which are written to path when it was asked for explicitly.
func loadOrCreateConfig(configSvc config.ConfigService, path string, explicit bool) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		cfg, err := configSvc.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded config from %s", path)
		return cfg, nil
	}

	cfg := config.DefaultConfig()
	if explicit {
		log.Printf("Creating new config at %s", path)
		if err := configSvc.SaveToPath(cfg, path); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}
	return cfg, nil
}

// runSelect runs the terminal UI over list and returns the label of the
// chosen item
func runSelect[T any](list []T, ctrlOpts selectctl.Options[T], render func(T) string, opts *options, cfg *config.Config, bus eventbus.EventBus) (string, error) {
	ctrlOpts.InitialOpen = cfg.StartOpen
	ctrlOpts.Bus = bus

	if opts.initial != "" {
		initial, ok := findByLabel(list, opts.initial, ctrlOpts.ItemToString)
		if !ok {
			return "", fmt.Errorf("no item labelled %q", opts.initial)
		}
		ctrlOpts.InitialSelectedItem = &initial
	}
	ctrl := selectctl.New(list, ctrlOpts)

	var modelOpts []tui.Option[T]
	if render != nil {
		modelOpts = append(modelOpts, tui.WithItemRenderer(render))
	}
	model := tui.New(ctrl, cfg, modelOpts...)
	defer model.Detach()

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithMouseAllMotion(),
	}
	if opts.itemsPath == "-" {
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	log.Printf("Starting UI with %d items", len(list))
	if _, err := p.Run(); err != nil {
		return "", fmt.Errorf("failed to run program: %w", err)
	}
	log.Printf("UI exited normally")

	chosen, ok := model.Chosen()
	if !ok {
		return "", errNothingChosen
	}
	return ctrl.Label(chosen), nil
}

func findByLabel[T any](list []T, label string, itemToString func(T) string) (T, bool) {
	for _, item := range list {
		text := fmt.Sprint(item)
		if itemToString != nil {
			text = itemToString(item)
		}
		if strings.EqualFold(text, label) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
