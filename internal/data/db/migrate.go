package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/domain"
)

// AutoMigrate creates or updates the schema for every domain model, parents
// before children so foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	for _, model := range domain.Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("automigrate %T: %w", model, err)
		}
	}
	return nil
}

// Truncate removes every row, children first. Used by the seed command.
func Truncate(db *gorm.DB) error {
	models := domain.Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
			return fmt.Errorf("truncate %T: %w", models[i], err)
		}
	}
	return nil
}

// ResetSequences moves each Postgres id sequence past the highest stored id,
// so rows inserted with explicit ids do not collide with later inserts.
func ResetSequences(db *gorm.DB) error {
	for _, model := range domain.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse %T: %w", model, err)
		}
		table := stmt.Schema.Table
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %s",
			table, table,
		)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("reset sequence %s: %w", table, err)
		}
	}
	return nil
}
