// Package stderr redirects file descriptor 2 into the log while the TUI owns
// the terminal. Anything written there directly (cgo libraries, the D-Bus
// client, the runtime) would otherwise land in the middle of a frame.
package stderr

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// drain logs every non-blank line read from r until it is closed.
func drain(r io.Reader, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn().Str("line", line).Msg("stderr")
		}
	}
}
