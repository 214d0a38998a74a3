// Package ports defines the interfaces through which the layout pass
// reaches the outside world: logging, the filesystem, file watching and
// metrics.
package ports
