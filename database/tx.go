package database

import (
	"context"

	"gorm.io/gorm"
)

// WithinTx runs fn in a transaction that is committed when fn returns nil and
// rolled back on an error or panic.
func WithinTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
