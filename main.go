package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/phototriage/internal/api"
	"github.com/llehouerou/phototriage/internal/app"
	"github.com/llehouerou/phototriage/internal/config"
	"github.com/llehouerou/phototriage/internal/errmsg"
	"github.com/llehouerou/phototriage/internal/icons"
	"github.com/llehouerou/phototriage/internal/journal"
	"github.com/llehouerou/phototriage/internal/logging"
	"github.com/llehouerou/phototriage/internal/notify"
	"github.com/llehouerou/phototriage/internal/session"
	"github.com/llehouerou/phototriage/internal/shortcut"
	"github.com/llehouerou/phototriage/internal/stderr"
	"github.com/llehouerou/phototriage/internal/ui/preview"
)

const usage = `Usage: phototriage [flags] [media-id ...]

Triage photos with keyboard shortcuts. With media ids (as arguments or from
--ids-file) each item is shown once in order; without them random items are
shown until you leave.

Flags:
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file loaded after the default locations")
	idsFile := flag.String("ids-file", "", "file with one media id per line")
	modeName := flag.String("mode", "", "session mode: sequential or random")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logCloser, err := logging.Setup(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logCloser.Close()

	if err := stderr.Start(); err != nil {
		log.Warn().Err(err).Msg("capture stderr")
	}
	defer stderr.Stop()

	icons.Init(cfg.Display.Icons)

	ids := flag.Args()
	if *idsFile != "" {
		fromFile, err := readIDs(*idsFile)
		if err != nil {
			return err
		}
		ids = append(ids, fromFile...)
	}

	mode, err := resolveMode(*modeName, cfg.Session.Mode, len(ids) > 0)
	if err != nil {
		return err
	}

	// The journal is optional; triage works without it.
	var jrnl journal.Interface
	if cfg.Journal.Enabled {
		mgr, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Error().Str("path", cfg.Journal.Path).Msg(errmsg.Format(errmsg.OpJournalOpen, err))
		} else {
			defer mgr.Close()
			jrnl = mgr
		}
	}

	opts := []api.Option{api.WithTimeout(cfg.Timeout())}
	if cfg.HasCookie() {
		opts = append(opts, api.WithCookie(cfg.Server.CookieName, cfg.Server.Cookie))
	}
	client := api.NewClient(cfg.Server.URL, opts...)

	var renderer *preview.Renderer
	if p := preview.Detect(cfg.Display.Preview); p != nil {
		renderer = preview.New(p)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notify.Desktop {
		if n, err := notify.New(); err != nil {
			log.Warn().Err(err).Msg("desktop notifications unavailable")
		} else {
			notifier = n
		}
	}

	previewName := "none"
	if renderer != nil {
		previewName = renderer.Protocol()
	}
	log.Info().
		Str("server", cfg.Server.URL).
		Str("mode", mode.String()).
		Int("ids", len(ids)).
		Str("preview", previewName).
		Bool("journal", jrnl != nil).
		Msg("starting")

	m := app.New(app.Deps{
		Media:    client,
		Registry: shortcut.NewRegistry(client),
		Journal:  jrnl,
		Notifier: notifier,
		Preview:  renderer,
	}, app.Options{
		Mode:          mode,
		IDs:           ids,
		Timeout:       cfg.Timeout(),
		ToastDuration: cfg.ToastDuration(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	if renderer != nil {
		// Free the last image held by the terminal.
		fmt.Print(renderer.Clear())
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// resolveMode picks the session mode: the flag, else random when no ids
// were given, else the configured mode. Random mode draws its own items, so
// it rejects media ids instead of ignoring them.
func resolveMode(flagValue, configured string, haveIDs bool) (session.Mode, error) {
	mode := session.RandomRefill
	var err error
	switch {
	case flagValue != "":
		mode, err = session.ParseMode(flagValue)
	case haveIDs:
		mode, err = session.ParseMode(configured)
	}
	if err != nil {
		return mode, err
	}
	if mode == session.RandomRefill && haveIDs {
		return mode, errors.New("random mode does not take media ids; use --mode sequential or drop the ids")
	}
	if mode == session.Sequential && !haveIDs {
		return mode, errors.New("sequential mode needs media ids as arguments or --ids-file")
	}
	return mode, nil
}

// readIDs reads one media id per line. Blank lines and lines starting with
// '#' are skipped.
func readIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("read ids: %s lists no media ids", path)
	}
	return ids, nil
}
