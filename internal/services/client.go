package services

import (
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/data/repos"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type ClientService interface {
	List(dbc dbctx.Context) ([]*domain.Client, error)
	Get(dbc dbctx.Context, id uint) (*domain.Client, error)
	Create(dbc dbctx.Context, client *domain.Client) (*domain.Client, error)
	Update(dbc dbctx.Context, id uint, client *domain.Client) error
	Delete(dbc dbctx.Context, id uint) error
}

type clientService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
}

func NewClientService(db *gorm.DB, baseLog *logger.Logger, clientRepo repos.ClientRepo) ClientService {
	return &clientService{
		db:         db,
		log:        baseLog.With("service", "ClientService"),
		clientRepo: clientRepo,
	}
}

func (s *clientService) List(dbc dbctx.Context) ([]*domain.Client, error) {
	clients, err := s.clientRepo.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) Get(dbc dbctx.Context, id uint) (*domain.Client, error) {
	found, err := s.clientRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperr.NotFound("ClientService.Get", "client %d not found", id)
	}
	return found[0], nil
}

func (s *clientService) Create(dbc dbctx.Context, client *domain.Client) (*domain.Client, error) {
	const op = "ClientService.Create"
	if err := validateClient(op, client); err != nil {
		return nil, err
	}
	var created *domain.Client
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		if client.ID != 0 {
			taken, err := s.clientRepo.Exists(inner, client.ID)
			if err != nil {
				return fmt.Errorf("check client: %w", err)
			}
			if taken {
				return apperr.Conflict(op, "client %d already exists", client.ID)
			}
		}
		rows, err := s.clientRepo.Create(inner, []*domain.Client{client})
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		s.log.Warn("create client failed", "error", err)
		return nil, err
	}
	s.log.Info("client created", "client_id", created.ID)
	return created, nil
}

// Update replaces name and email. A body id, when present, must match id.
func (s *clientService) Update(dbc dbctx.Context, id uint, client *domain.Client) error {
	const op = "ClientService.Update"
	if client == nil {
		return apperr.Invalid(op, "missing client")
	}
	if client.ID != 0 && client.ID != id {
		return apperr.Invalid(op, "client id %d does not match path id %d", client.ID, id)
	}
	if err := validateClient(op, client); err != nil {
		return err
	}
	client.ID = id
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		ok, err := s.clientRepo.Exists(inner, id)
		if err != nil {
			return fmt.Errorf("check client: %w", err)
		}
		if !ok {
			return apperr.NotFound(op, "client %d not found", id)
		}
		if err := s.clientRepo.Update(inner, client); err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("update client failed", "error", err, "client_id", id)
	}
	return err
}

// Delete removes the client; the store cascades to its orders and their lines.
func (s *clientService) Delete(dbc dbctx.Context, id uint) error {
	n, err := s.clientRepo.DeleteByIDs(dbc, []uint{id})
	if err != nil {
		s.log.Warn("delete client failed", "error", err, "client_id", id)
		return fmt.Errorf("delete client: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("ClientService.Delete", "client %d not found", id)
	}
	return nil
}

func validateClient(op string, c *domain.Client) error {
	if c == nil {
		return apperr.Invalid(op, "missing client")
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Name == "" {
		return apperr.Invalid(op, "client name is required")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return apperr.Invalid(op, "client email %q is not a valid address", c.Email)
		}
	}
	return nil
}
