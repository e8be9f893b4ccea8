package interfaces

import "context"

// Translator is one translation provider
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}
