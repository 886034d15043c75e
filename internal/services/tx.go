package services

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/pkg/ctxutil"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
)

// inTx runs fn in the caller's transaction when there is one, otherwise in a
// new transaction on db.
func inTx(dbc dbctx.Context, db *gorm.DB, fn func(dbctx.Context) error) error {
	if dbc.Tx != nil {
		return fn(dbc)
	}
	ctx := ctxutil.Default(dbc.Ctx)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
