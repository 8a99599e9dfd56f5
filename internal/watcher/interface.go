package watcher

import "context"

// Watcher defines the interface for inbox monitoring
type Watcher interface {
	// Start handles files already in the inbox, then every new one, until
	// ctx is cancelled. It waits for in-flight handlers before returning.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles one inbox file
type EventHandler func(ctx context.Context, filePath string) error
