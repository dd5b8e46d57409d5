package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/alexanderramin/clientpro/internal/domain"
	"github.com/spf13/pflag"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dateValue is a YYYY-MM-DD flag. "today" and "tomorrow" are resolved when
// the flag is parsed.
type dateValue struct {
	target *string
	now    func() time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(target *string, now func() time.Time) *dateValue {
	return &dateValue{target: target, now: now}
}

func (d *dateValue) String() string { return *d.target }
func (d *dateValue) Type() string   { return "date" }

func (d *dateValue) Set(s string) error {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today", "aujourdhui":
		*d.target = d.now().Format(domain.DateLayout)
		return nil
	case "tomorrow", "demain":
		*d.target = d.now().AddDate(0, 0, 1).Format(domain.DateLayout)
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return err
	}
	*d.target = s
	return nil
}

// timeValue is an HH:MM flag. An empty value is accepted and clears the time.
type timeValue struct {
	target *string
}

var _ pflag.Value = (*timeValue)(nil)

func newTimeValue(target *string) *timeValue { return &timeValue{target: target} }

func (t *timeValue) String() string { return *t.target }
func (t *timeValue) Type() string   { return "HH:MM" }

func (t *timeValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if s != "" {
		if _, err := domain.ParseTimeOfDay(s); err != nil {
			return err
		}
	}
	*t.target = s
	return nil
}

// choiceValue maps case- and accent-insensitive aliases onto an enum.
type choiceValue[T ~string] struct {
	target  *T
	typ     string
	choices map[string]T
}

func newChoiceValue[T ~string](target *T, typ string, choices map[string]T) *choiceValue[T] {
	folded := make(map[string]T, len(choices))
	for k, v := range choices {
		folded[foldKey(k)] = v
	}
	return &choiceValue[T]{target: target, typ: typ, choices: folded}
}

func (c *choiceValue[T]) String() string { return string(*c.target) }
func (c *choiceValue[T]) Type() string   { return c.typ }

func (c *choiceValue[T]) Set(s string) error {
	v, ok := c.choices[foldKey(s)]
	if !ok {
		keys := make([]string, 0, len(c.choices))
		for k := range c.choices {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("%q is not a valid %s (one of: %s)", s, c.typ, strings.Join(keys, ", "))
	}
	*c.target = v
	return nil
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey lowercases s, strips accents and turns blanks into dashes, so
// "À payer" and "a-payer" compare equal.
func foldKey(s string) string {
	out, _, err := transform.String(accentFolder, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		out = strings.ToLower(strings.TrimSpace(s))
	}
	return strings.Join(strings.Fields(out), "-")
}

func newLocationValue(target *domain.Location) *choiceValue[domain.Location] {
	return newChoiceValue(target, "location", map[string]domain.Location{
		"domicile":   domain.LocationOnSite,
		"onsite":     domain.LocationOnSite,
		"a distance": domain.LocationRemote,
		"distance":   domain.LocationRemote,
		"remote":     domain.LocationRemote,
	})
}

func newPaymentValue(target *domain.PaymentStatus) *choiceValue[domain.PaymentStatus] {
	return newChoiceValue(target, "payment", map[string]domain.PaymentStatus{
		"paye":    domain.PaymentPaid,
		"paid":    domain.PaymentPaid,
		"a payer": domain.PaymentUnpaid,
		"unpaid":  domain.PaymentUnpaid,
		"gratuit": domain.PaymentFree,
		"free":    domain.PaymentFree,
	})
}

func newKindValue(target *domain.ClientKind) *choiceValue[domain.ClientKind] {
	return newChoiceValue(target, "kind", map[string]domain.ClientKind{
		"particulier":   domain.ClientIndividual,
		"individual":    domain.ClientIndividual,
		"professionnel": domain.ClientProfessional,
		"pro":           domain.ClientProfessional,
	})
}

func newFilterValue(target *domain.InterventionFilter) *choiceValue[domain.InterventionFilter] {
	choices := make(map[string]domain.InterventionFilter, len(domain.InterventionFilters))
	for _, f := range domain.InterventionFilters {
		choices[string(f)] = f
	}
	return newChoiceValue(target, "filter", choices)
}
