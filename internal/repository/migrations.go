package repository

import (
	"errors"
	"fmt"

	"github.com/Priyanka-kale21/webhack/internal/model"
)

// Migrator is satisfied by *gorm.DB.
type Migrator interface {
	AutoMigrate(dst ...any) error
}

// Migrate creates or updates the audit history schema in a single
// AutoMigrate call. Only finished audit reports are stored.
func Migrate(m Migrator) error {
	if len(model.AllModels) == 0 {
		return errors.New("no audit history models registered")
	}
	if err := m.AutoMigrate(model.AllModels...); err != nil {
		return fmt.Errorf("migrate audit history: %w", err)
	}
	return nil
}
