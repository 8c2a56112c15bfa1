package party

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("party not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Party, error)
	FindByName(ctx context.Context, name string) (Party, error)
	Create(ctx context.Context, p Party) (Party, error)
}
