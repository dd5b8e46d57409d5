package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/db"
	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"github.com/google/uuid"
)

type interventionService struct {
	interventions repository.InterventionRepo
	uow           db.UnitOfWork
	observer      UseCaseObserver
}

func NewInterventionService(
	interventions repository.InterventionRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) InterventionService {
	return &interventionService{
		interventions: interventions,
		uow:           uow,
		observer:      useCaseObserverOrNoop(observers),
	}
}

// Create validates and stores a new intervention. A blank numero gets the
// next free one. Overlaps with other interventions of the same date come
// back as warnings and never block the save.
func (s *interventionService) Create(ctx context.Context, in *domain.Intervention) (res *SaveResult, err error) {
	fields := map[string]any{"date": in.Date}
	defer observe(ctx, s.observer, "create-intervention", time.Now().UTC(), fields, &err)

	normalizeIntervention(in)
	if in.Location == "" {
		in.Location = domain.LocationOnSite
	}
	if in.Payment == "" {
		in.Payment = domain.PaymentUnpaid
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		clients := repository.NewSQLiteClientRepo(tx)
		interventions := repository.NewSQLiteInterventionRepo(tx)

		if in.Numero == "" {
			next, err := interventions.NextNumero(ctx)
			if err != nil {
				return err
			}
			in.Numero = next
		}
		if err := s.validate(ctx, clients, interventions, in, true); err != nil {
			return err
		}

		warnings, err := s.conflictsOn(ctx, interventions, candidateOf(in))
		if err != nil {
			return err
		}
		if err := interventions.Create(ctx, in); err != nil {
			return err
		}
		stored, err := interventions.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		res = &SaveResult{Intervention: stored, Warnings: warnings}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["numero"] = in.Numero
	fields["warnings"] = len(res.Warnings)
	return res, nil
}

// Update applies patch with the same rules as Create. The record being
// edited is excluded from its own overlap check.
func (s *interventionService) Update(ctx context.Context, id string, patch InterventionPatch) (res *SaveResult, err error) {
	fields := map[string]any{"intervention_id": id}
	defer observe(ctx, s.observer, "update-intervention", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		clients := repository.NewSQLiteClientRepo(tx)
		interventions := repository.NewSQLiteInterventionRepo(tx)

		current, err := interventions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in := current.Intervention
		applyInterventionPatch(&in, patch)
		normalizeIntervention(&in)

		clientChanged := in.ClientID != current.ClientID
		if err := s.validate(ctx, clients, interventions, &in, clientChanged); err != nil {
			return err
		}
		warnings, err := s.conflictsOn(ctx, interventions, candidateOf(&in))
		if err != nil {
			return err
		}
		in.UpdatedAt = time.Now().UTC()
		if err := interventions.Update(ctx, &in); err != nil {
			return err
		}
		stored, err := interventions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		res = &SaveResult{Intervention: stored, Warnings: warnings}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["warnings"] = len(res.Warnings)
	return res, nil
}

// validate collects every blocking problem into one ValidationError. The
// client is only required to be active when it is being assigned.
func (s *interventionService) validate(
	ctx context.Context,
	clients repository.ClientRepo,
	interventions repository.InterventionRepo,
	in *domain.Intervention,
	checkClient bool,
) error {
	v := in.Validate()
	var causes []error

	if checkClient && in.ClientID != "" {
		cs, err := loadActiveClient(ctx, clients, in.ClientID, v)
		if err != nil {
			return err
		}
		causes = append(causes, cs...)
	}
	if in.Numero != "" {
		taken, err := interventions.NumeroExists(ctx, in.Numero, in.ID)
		if err != nil {
			return err
		}
		if taken {
			v.Add("numero", fmt.Sprintf("%s is already used", in.Numero))
			causes = append(causes, ErrDuplicateNumero)
		}
	}
	if !v.Empty() {
		return newValidationError(v, causes...)
	}
	return nil
}

func (s *interventionService) conflictsOn(ctx context.Context, interventions repository.InterventionRepo, c scheduler.Candidate) ([]scheduler.Conflict, error) {
	if strings.TrimSpace(c.Date) == "" {
		return nil, nil
	}
	sameDay, err := interventions.ListByDate(ctx, c.Date)
	if err != nil {
		return nil, err
	}
	return scheduler.DetectConflicts(c, interventionsOf(sameDay)), nil
}

func (s *interventionService) Get(ctx context.Context, id string) (*domain.InterventionView, error) {
	return s.interventions.GetByID(ctx, id)
}

func (s *interventionService) GetByNumero(ctx context.Context, numero string) (*domain.InterventionView, error) {
	return s.interventions.GetByNumero(ctx, numero)
}

func (s *interventionService) Resolve(ctx context.Context, ref string) (*domain.InterventionView, error) {
	ref = strings.TrimSpace(ref)
	if v, err := s.interventions.GetByNumero(ctx, ref); err == nil {
		return v, nil
	} else if !isNotFound(err) {
		return nil, err
	}
	if v, err := s.interventions.GetByID(ctx, ref); err == nil {
		return v, nil
	} else if !isNotFound(err) {
		return nil, err
	}
	all, err := s.interventions.List(ctx, domain.FilterAll)
	if err != nil {
		return nil, err
	}
	return matchByPrefix(ref, all, func(v *domain.InterventionView) string { return v.ID })
}

func (s *interventionService) List(ctx context.Context, filter domain.InterventionFilter, term string) ([]*domain.InterventionView, error) {
	if strings.TrimSpace(term) == "" {
		return s.interventions.List(ctx, filter)
	}
	return s.interventions.Search(ctx, term, filter)
}

func (s *interventionService) ListByClient(ctx context.Context, clientID string) ([]*domain.InterventionView, error) {
	return s.interventions.ListByClient(ctx, clientID)
}

func (s *interventionService) SetDone(ctx context.Context, id string, done bool) (err error) {
	defer observe(ctx, s.observer, "set-intervention-done", time.Now().UTC(), map[string]any{"intervention_id": id, "done": done}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		interventions := repository.NewSQLiteInterventionRepo(tx)
		v, err := interventions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		in := v.Intervention
		in.Done = done
		in.UpdatedAt = time.Now().UTC()
		return interventions.Update(ctx, &in)
	})
}

func (s *interventionService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-intervention", time.Now().UTC(), map[string]any{"intervention_id": id}, &err)
	return s.interventions.Delete(ctx, id)
}

func (s *interventionService) SuggestNumero(ctx context.Context) (string, error) {
	return s.interventions.NextNumero(ctx)
}

// CheckConflicts runs the overlap check alone, for forms that warn before
// saving.
func (s *interventionService) CheckConflicts(ctx context.Context, c scheduler.Candidate) ([]scheduler.Conflict, error) {
	return s.conflictsOn(ctx, s.interventions, c)
}

func applyInterventionPatch(i *domain.Intervention, p InterventionPatch) {
	i.Numero = domain.StrFromPtrWithDefault(i.Numero, p.Numero)
	i.ClientID = domain.StrFromPtrWithDefault(i.ClientID, p.ClientID)
	i.Date = domain.StrFromPtrWithDefault(i.Date, p.Date)
	i.StartTime = domain.StrFromPtrWithDefault(i.StartTime, p.StartTime)
	i.EndTime = domain.StrFromPtrWithDefault(i.EndTime, p.EndTime)
	i.Summary = domain.StrFromPtrWithDefault(i.Summary, p.Summary)
	i.Details = domain.StrFromPtrWithDefault(i.Details, p.Details)
	i.Done = domain.BoolFromPtrWithDefault(i.Done, p.Done)
	if p.Location != nil {
		i.Location = *p.Location
	}
	if p.Payment != nil {
		i.Payment = *p.Payment
	}
}

func normalizeIntervention(i *domain.Intervention) {
	i.Numero = strings.ToUpper(strings.TrimSpace(i.Numero))
	i.Date = strings.TrimSpace(i.Date)
	i.StartTime = strings.TrimSpace(i.StartTime)
	i.EndTime = strings.TrimSpace(i.EndTime)
	i.Summary = strings.TrimSpace(i.Summary)
}
