package position

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("position not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Position, error)
	FindByName(ctx context.Context, name string) (Position, error)
	Create(ctx context.Context, p Position) (Position, error)
}
