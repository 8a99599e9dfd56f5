package vision

import "context"

// Analyzer asks a vision model about a single image file.
type Analyzer interface {
	// Describe returns a description at the given detail level. An empty
	// model response is returned as "".
	Describe(ctx context.Context, imagePath string, detail Detail) (string, error)
	AnswerQuestion(ctx context.Context, imagePath, question string) (string, error)
	// DetectObjects reports the whole image as one scene object.
	DetectObjects(ctx context.Context, imagePath string) ([]DetectedObject, error)
}

// OCR reads text out of images.
type OCR interface {
	ExtractText(ctx context.Context, imagePath string, cleanup bool) (string, error)
	ExtractStructured(ctx context.Context, imagePath, structureType string) (any, error)
}
