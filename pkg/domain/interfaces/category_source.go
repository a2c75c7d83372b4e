package interfaces

import (
	"context"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
)

// CategorySource provides category definitions read once at startup.
// An absent source returns (nil, nil); the taxonomy then runs in degraded
// mode with an empty vocabulary. A malformed source returns a config error.
type CategorySource interface {
	Load(ctx context.Context) ([]model.CategoryDefinition, error)
}
