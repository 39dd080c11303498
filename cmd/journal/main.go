// Command journal prints the actions recorded by phototriage sessions.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/phototriage/internal/config"
	"github.com/llehouerou/phototriage/internal/journal"
	"github.com/llehouerou/phototriage/internal/shortcut"
)

func main() {
	configPath := flag.String("config", "", "config file loaded after the default locations")
	limit := flag.Int("n", 20, "number of entries to show")
	sessionID := flag.String("session", "", "summarize one session instead of listing entries")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()

	if *sessionID != "" {
		err = summarize(os.Stdout, j, *sessionID)
	} else {
		err = list(os.Stdout, j, *limit)
	}
	if err != nil {
		log.Printf("Error: %v", err)
		j.Close()
		os.Exit(1) //nolint:gocritic // closed above
	}
}

func list(w io.Writer, j *journal.Manager, limit int) error {
	entries, err := j.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No actions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tDESTINATION\tFILE\tMEDIA\tSESSION")
	for _, e := range entries {
		dest := shortcut.TrashLabel
		if e.Action == string(shortcut.ActionAlbum) {
			dest = e.AlbumName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(e.CreatedAt), dest, e.Filename, e.MediaID, shortID(e.SessionID))
	}
	return tw.Flush()
}

func summarize(w io.Writer, j *journal.Manager, id string) error {
	totals, err := j.Totals(id)
	if err != nil {
		return err
	}
	ended, ok, err := j.Ended(id)
	if err != nil {
		return err
	}

	status := "running or interrupted"
	if ok {
		status = "ended " + humanize.Time(ended)
	}
	fmt.Fprintf(w, "Session %s (%s)\n", id, status)
	fmt.Fprintf(w, "  applied: %s\n", humanize.Comma(int64(totals.Applied())))
	fmt.Fprintf(w, "  trashed: %s\n", humanize.Comma(int64(totals.Trashed)))
	fmt.Fprintf(w, "  moved:   %s\n", humanize.Comma(int64(totals.Moved)))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
