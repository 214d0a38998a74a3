package ports

import "context"

// Watcher reports changes to files.
type Watcher interface {
	// Watch sends the path of each changed file until ctx is done, then
	// closes the channel. Bursts of events for one file may be coalesced.
	Watch(ctx context.Context, paths ...string) (<-chan string, error)
}
