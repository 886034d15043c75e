// Package sales holds the gorm repositories for clients, products, orders and
// order line items.
package sales

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
)

func createRows[T any](dbc dbctx.Context, db *gorm.DB, rows []*T) ([]*T, error) {
	if len(rows) == 0 {
		return []*T{}, nil
	}
	if err := dbc.Conn(db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func getByIDs[T any](dbc dbctx.Context, db *gorm.DB, ids []uint) ([]*T, error) {
	results := []*T{}
	if len(ids) == 0 {
		return results, nil
	}
	if err := dbc.Conn(db).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func listAll[T any](dbc dbctx.Context, db *gorm.DB) ([]*T, error) {
	results := []*T{}
	if err := dbc.Conn(db).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func listWhere[T any](dbc dbctx.Context, db *gorm.DB, column string, value uint) ([]*T, error) {
	results := []*T{}
	if err := dbc.Conn(db).
		Where(column+" = ?", value).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func updateColumns[T any](dbc dbctx.Context, db *gorm.DB, id uint, columns map[string]any) error {
	var model T
	return dbc.Conn(db).
		Model(&model).
		Where("id = ?", id).
		Updates(columns).Error
}

func deleteByIDs[T any](dbc dbctx.Context, db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var model T
	res := dbc.Conn(db).Where("id IN ?", ids).Delete(&model)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func exists[T any](dbc dbctx.Context, db *gorm.DB, id uint) (bool, error) {
	var (
		model T
		count int64
	)
	if err := dbc.Conn(db).
		Model(&model).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
