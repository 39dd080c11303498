//go:build !linux

package stderr

// Start is a no-op outside Linux.
func Start() error {
	return nil
}

// Stop is a no-op outside Linux.
func Stop() {}
