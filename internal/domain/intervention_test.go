package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validIntervention() *Intervention {
	return &Intervention{
		Numero:    "INT-001",
		ClientID:  "c1",
		Date:      "2026-02-09",
		StartTime: "09:00",
		EndTime:   "12:00",
		Location:  LocationOnSite,
		Payment:   PaymentUnpaid,
	}
}

func TestInterventionValidate_OK(t *testing.T) {
	assert.True(t, validIntervention().Validate().Empty())

	allDay := validIntervention()
	allDay.StartTime, allDay.EndTime = "", ""
	assert.True(t, allDay.Validate().Empty())
	assert.True(t, allDay.IsAllDay())
}

func TestInterventionValidate_FieldViolations(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Intervention)
		field string
	}{
		{"missing client", func(i *Intervention) { i.ClientID = "" }, "client"},
		{"missing numero", func(i *Intervention) { i.Numero = " " }, "numero"},
		{"missing date", func(i *Intervention) { i.Date = "" }, "date"},
		{"bad date", func(i *Intervention) { i.Date = "09/02/2026" }, "date"},
		{"bad start", func(i *Intervention) { i.StartTime = "9:00" }, "start_time"},
		{"bad end", func(i *Intervention) { i.EndTime = "12h" }, "end_time"},
		{"start without end", func(i *Intervention) { i.EndTime = "" }, "end_time"},
		{"end without start", func(i *Intervention) { i.StartTime = "" }, "start_time"},
		{"end before start", func(i *Intervention) { i.StartTime, i.EndTime = "12:00", "09:00" }, "end_time"},
		{"empty range", func(i *Intervention) { i.StartTime, i.EndTime = "09:00", "09:00" }, "end_time"},
		{"bad location", func(i *Intervention) { i.Location = "Office" }, "location"},
		{"bad payment", func(i *Intervention) { i.Payment = "Later" }, "payment"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iv := validIntervention()
			tc.mut(iv)
			v := iv.Validate()
			assert.Contains(t, v, tc.field)
		})
	}
}

func TestViolationCause(t *testing.T) {
	iv := validIntervention()
	iv.StartTime, iv.EndTime = "12:00", "09:00"
	assert.True(t, errors.Is(ViolationCause(iv.Validate()), ErrInvalidTimeRange))

	iv = validIntervention()
	iv.Date = "tomorrow"
	iv.StartTime = "9:00"
	cause := ViolationCause(iv.Validate())
	assert.ErrorIs(t, cause, ErrInvalidDateFormat)
	assert.ErrorIs(t, cause, ErrInvalidTimeFormat)

	assert.NoError(t, ViolationCause(validIntervention().Validate()))
}

func TestClientValidate(t *testing.T) {
	c := &Client{Name: "Dupont", Kind: ClientIndividual}
	assert.True(t, c.Validate().Empty())

	c = &Client{Name: "  ", Kind: "Other", Email: "nope"}
	v := c.Validate()
	assert.Contains(t, v, "name")
	assert.Contains(t, v, "kind")
	assert.Contains(t, v, "email")
}

func TestNumero(t *testing.T) {
	assert.Equal(t, "INT-001", NextNumero(nil))
	assert.Equal(t, "INT-008", NextNumero([]string{"INT-003", "INT-007", "INT-002"}))
	assert.Equal(t, "INT-013", NextNumero([]string{"INT-012", "CUSTOM", "INT-abc", "INT-"}))
	assert.Equal(t, "INT-1000", NextNumero([]string{"INT-999"}))

	n, ok := NumeroSeq("INT-042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)
	_, ok = NumeroSeq("X-042")
	assert.False(t, ok)
}

func TestParseInterventionFilter(t *testing.T) {
	assert.Equal(t, FilterUnpaid, ParseInterventionFilter("unpaid"))
	assert.Equal(t, FilterAll, ParseInterventionFilter("bogus"))
}
