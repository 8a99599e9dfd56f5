package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves a processed input out of the inbox so it is not
// picked up again.
func (p *implProcessor) moveToArchived(ctx context.Context, filePath string) error {
	if err := os.MkdirAll(p.paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.paths.Archived, filepath.Base(filePath))
	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", filePath, destPath)

	if err := os.Rename(filePath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
