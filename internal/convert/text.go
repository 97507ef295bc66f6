package convert

import (
	"context"
	"fmt"
	"os"
)

// TextConverter reads documents that are already plain text.
type TextConverter struct{}

// Convert implements Converter.
func (TextConverter) Convert(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
