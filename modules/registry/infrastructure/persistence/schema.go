package persistence

import (
	"context"
	_ "embed"

	"github.com/openpol/registry/pkg/composables"
)

//go:embed schema/registry-schema.sql
var schemaSQL string

// ApplySchema creates the registry tables if they do not exist yet.
func ApplySchema(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, schemaSQL)
	return err
}
