package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/db"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/google/uuid"
)

type clientService struct {
	clients  repository.ClientRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewClientService(clients repository.ClientRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ClientService {
	return &clientService{
		clients:  clients,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) (err error) {
	defer observe(ctx, s.observer, "create-client", time.Now().UTC(), map[string]any{"name": c.Name}, &err)

	normalizeClient(c)
	if c.Kind == "" {
		c.Kind = domain.ClientIndividual
	}
	if v := c.Validate(); !v.Empty() {
		return newValidationError(v)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Active = true
	return s.clients.Create(ctx, c)
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) Resolve(ctx context.Context, ref string) (*domain.Client, error) {
	ref = strings.TrimSpace(ref)
	if c, err := s.clients.GetByID(ctx, ref); err == nil {
		return c, nil
	} else if !isNotFound(err) {
		return nil, err
	}

	all, err := s.clients.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var byName []*domain.Client
	for _, c := range all {
		if strings.EqualFold(c.Name, ref) {
			byName = append(byName, c)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return nil, fmt.Errorf("client %q: %w", ref, ErrAmbiguousRef)
	}
	return matchByPrefix(ref, all, func(c *domain.Client) string { return c.ID })
}

func (s *clientService) List(ctx context.Context, includeInactive bool) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	sortClientsByName(clients)
	return clients, nil
}

func (s *clientService) Search(ctx context.Context, term string) ([]*domain.Client, error) {
	if strings.TrimSpace(term) == "" {
		return s.List(ctx, false)
	}
	clients, err := s.clients.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	sortClientsByName(clients)
	return clients, nil
}

func (s *clientService) Update(ctx context.Context, id string, patch ClientPatch) (updated *domain.Client, err error) {
	defer observe(ctx, s.observer, "update-client", time.Now().UTC(), map[string]any{"client_id": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		clients := repository.NewSQLiteClientRepo(tx)
		c, err := clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		applyClientPatch(c, patch)
		normalizeClient(c)
		if v := c.Validate(); !v.Empty() {
			return newValidationError(v)
		}
		c.UpdatedAt = time.Now().UTC()
		if err := clients.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	return updated, err
}

func (s *clientService) Delete(ctx context.Context, id string, hard bool) (err error) {
	defer observe(ctx, s.observer, "delete-client", time.Now().UTC(), map[string]any{"client_id": id, "hard": hard}, &err)

	if !hard {
		return s.clients.SoftDelete(ctx, id)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		refs, err := repository.NewSQLiteInterventionRepo(tx).ListByClient(ctx, id)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return fmt.Errorf("client %s has %d interventions: %w", id, len(refs), ErrClientInUse)
		}
		return repository.NewSQLiteClientRepo(tx).Delete(ctx, id)
	})
}

func applyClientPatch(c *domain.Client, p ClientPatch) {
	c.Name = domain.StrFromPtrWithDefault(c.Name, p.Name)
	c.Email = domain.StrFromPtrWithDefault(c.Email, p.Email)
	c.Phone = domain.StrFromPtrWithDefault(c.Phone, p.Phone)
	c.Phone2 = domain.StrFromPtrWithDefault(c.Phone2, p.Phone2)
	c.Address = domain.StrFromPtrWithDefault(c.Address, p.Address)
	c.PostalCode = domain.StrFromPtrWithDefault(c.PostalCode, p.PostalCode)
	c.City = domain.StrFromPtrWithDefault(c.City, p.City)
	c.Notes = domain.StrFromPtrWithDefault(c.Notes, p.Notes)
	c.Active = domain.BoolFromPtrWithDefault(c.Active, p.Active)
	if p.Kind != nil {
		c.Kind = *p.Kind
	}
}

func normalizeClient(c *domain.Client) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Phone2 = strings.TrimSpace(c.Phone2)
	c.PostalCode = strings.TrimSpace(c.PostalCode)
	c.City = strings.TrimSpace(c.City)
}
