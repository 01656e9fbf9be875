package seeder

import (
	"context"

	"tha-drop/internal/domain/user"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, store user.Store) error
}
