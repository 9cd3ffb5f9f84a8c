package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/albumview/internal/config"
	"github.com/mmcdole/albumview/internal/domain"
	"github.com/mmcdole/albumview/internal/log"
	"github.com/mmcdole/albumview/internal/photoserver"
	"github.com/mmcdole/albumview/internal/service"
	"github.com/mmcdole/albumview/internal/store"
	"github.com/mmcdole/albumview/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// errFetchFailed marks a failure the user has already been shown
var errFetchFailed = errors.New("fetch failed")

type options struct {
	plain  bool
	album  string
	last   bool
	forget bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&opts.plain, "plain", false, "print the record as JSON instead of starting the TUI")
	flag.StringVar(&opts.album, "album", "", "list the photos of an album, by id or title")
	flag.BoolVar(&opts.last, "last", false, "print the last fetched album list without a request")
	flag.BoolVar(&opts.forget, "forget", false, "delete the saved album list")
	flag.Parse()

	if showVersion {
		fmt.Printf("albumview %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		if !errors.Is(err, errFetchFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting albumview", "version", Version, "server", cfg.Server.URL)

	snapshots, err := store.Open(cfg.Cache.Dir)
	if err != nil {
		logger.Warn("snapshot store unavailable, using memory", "error", err)
		snapshots, _ = store.Open("")
	}
	defer snapshots.Close()

	endpoints := photoserver.NewEndpoints(cfg.Server)
	client := photoserver.NewClient(nil, logger)

	if opts.forget {
		return forgetLast(os.Stdout, snapshots, endpoints.AlbumsList())
	}
	if opts.last {
		return printLast(os.Stdout, snapshots, endpoints.AlbumsList())
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && !opts.plain && opts.album == ""
	if !interactive {
		fetcher := service.NewFetcher(client, endpoints, service.NewWriterNotifier(os.Stderr), snapshots, logger)
		return runPlain(context.Background(), os.Stdout, fetcher, opts.album)
	}

	notifier := tui.NewAlertNotifier(logger)
	defer notifier.Close()
	fetcher := service.NewFetcher(client, endpoints, notifier, snapshots, logger)

	model := tui.NewModel(fetcher, logger)

	programOpts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, programOpts...)
	notifier.Attach(p)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runPlain fetches once and prints the resulting record as JSON.
// Failures have already been written to stderr by the notifier.
func runPlain(ctx context.Context, w io.Writer, fetcher *service.Fetcher, album string) error {
	payload, err := fetcher.FetchAlbumList().Await(ctx)
	if err != nil {
		return errFetchFailed
	}

	if album != "" {
		id, err := service.ResolveAlbumID(payload, album)
		if err != nil {
			return fmt.Errorf("%q: %w", album, err)
		}
		payload, err = fetcher.FetchAlbum(id).Await(ctx)
		if err != nil {
			return errFetchFailed
		}
	}

	return printRecord(w, domain.RecordFromPayload(payload))
}

// printLast prints the latest stored snapshot of url
func printLast(w io.Writer, snapshots *store.SnapshotStore, url string) error {
	snap, ok, err := snapshots.Latest(url)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no saved album list for %s", url)
	}

	payload, err := snap.Payload()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# fetched %s\n", snap.FetchedAt.Local().Format("2006-01-02 15:04:05"))
	return printRecord(w, domain.RecordFromPayload(payload))
}

// forgetLast deletes the stored snapshot of url
func forgetLast(w io.Writer, snapshots *store.SnapshotStore, url string) error {
	if err := snapshots.Delete(url); err != nil {
		return fmt.Errorf("failed to delete saved album list: %w", err)
	}
	_, err := fmt.Fprintf(w, "forgot saved album list for %s\n", url)
	return err
}

func printRecord(w io.Writer, rec domain.DisplayRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
