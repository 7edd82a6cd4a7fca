package ports

import (
	"context"
)

// TextGenerator is the opaque external text-generation service: prompt
// string in, generated text out. The dashboard never depends on provider
// specifics beyond this contract.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemMessage, prompt string) (string, error)
}
