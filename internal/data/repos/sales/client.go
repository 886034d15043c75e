package sales

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type ClientRepo interface {
	Create(dbc dbctx.Context, clients []*domain.Client) ([]*domain.Client, error)
	GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.Client, error)
	List(dbc dbctx.Context) ([]*domain.Client, error)
	Update(dbc dbctx.Context, client *domain.Client) error
	DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	repoLog := baseLog.With("repo", "ClientRepo")
	return &clientRepo{db: db, log: repoLog}
}

func (r *clientRepo) Create(dbc dbctx.Context, clients []*domain.Client) ([]*domain.Client, error) {
	return createRows(dbc, r.db, clients)
}

func (r *clientRepo) GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.Client, error) {
	return getByIDs[domain.Client](dbc, r.db, ids)
}

func (r *clientRepo) List(dbc dbctx.Context) ([]*domain.Client, error) {
	return listAll[domain.Client](dbc, r.db)
}

func (r *clientRepo) Update(dbc dbctx.Context, client *domain.Client) error {
	if client == nil {
		return nil
	}
	return updateColumns[domain.Client](dbc, r.db, client.ID, map[string]any{
		"name":  client.Name,
		"email": client.Email,
	})
}

func (r *clientRepo) DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error) {
	return deleteByIDs[domain.Client](dbc, r.db, ids)
}

func (r *clientRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	return exists[domain.Client](dbc, r.db, id)
}
