package processor

import "context"

// Processor handles one file dropped into the inbox.
type Processor interface {
	Process(ctx context.Context, filePath string) error
}
