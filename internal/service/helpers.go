package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/alexanderramin/clientpro/internal/repository"
	"github.com/alexanderramin/clientpro/internal/scheduler"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// minPrefixLen is the shortest id prefix accepted by Resolve.
const minPrefixLen = 4

// nowOr returns *now when set, the current time otherwise.
func nowOr(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now()
}

// todayOf is the calendar date of t in its own location.
func todayOf(t time.Time) time.Time {
	return domain.DateOnly(t)
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// interventionsOf strips the client join for the scheduler.
func interventionsOf(views []*domain.InterventionView) []*domain.Intervention {
	out := make([]*domain.Intervention, 0, len(views))
	for _, v := range views {
		out = append(out, &v.Intervention)
	}
	return out
}

func candidateOf(i *domain.Intervention) scheduler.Candidate {
	return scheduler.Candidate{Date: i.Date, Start: i.StartTime, End: i.EndTime, ExcludeID: i.ID}
}

// nameCollator orders names the way a French reader expects, so "Émile"
// sorts next to "Emma" rather than after "Zoé".
func nameCollator() *collate.Collator {
	return collate.New(language.French, collate.IgnoreCase, collate.IgnoreDiacritics)
}

func sortClientsByName(clients []*domain.Client) {
	col := nameCollator()
	sort.SliceStable(clients, func(i, j int) bool {
		return col.CompareString(clients[i].Name, clients[j].Name) < 0
	})
}

// matchByPrefix picks the single candidate whose id starts with ref.
func matchByPrefix[T any](ref string, items []T, id func(T) string) (T, error) {
	var zero T
	if len(ref) < minPrefixLen {
		return zero, fmt.Errorf("%q: %w", ref, repository.ErrNotFound)
	}
	var found []T
	for _, it := range items {
		if strings.HasPrefix(id(it), ref) {
			found = append(found, it)
		}
	}
	switch len(found) {
	case 0:
		return zero, fmt.Errorf("%q: %w", ref, repository.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return zero, fmt.Errorf("%q matches %d records: %w", ref, len(found), ErrAmbiguousRef)
	}
}

// loadActiveClient records a violation when the client is missing or
// inactive. Only storage failures are returned as errors.
func loadActiveClient(ctx context.Context, clients repository.ClientRepo, id string, v domain.Violations) ([]error, error) {
	c, err := clients.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			v.Add("client", "client does not exist")
			return []error{repository.ErrNotFound}, nil
		}
		return nil, err
	}
	if !c.Active {
		v.Add("client", fmt.Sprintf("client %s is inactive", c.Name))
		return []error{ErrClientInactive}, nil
	}
	return nil, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
