package domain

import (
	"errors"
	"strings"
	"time"
)

type Intervention struct {
	ID        string
	Numero    string
	ClientID  string
	Date      string // YYYY-MM-DD, kept verbatim as stored
	StartTime string // HH:MM or empty
	EndTime   string // HH:MM or empty
	Location  Location
	Payment   PaymentStatus
	Done      bool
	Summary   string
	Details   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InterventionView is an intervention joined with its client's contact fields.
type InterventionView struct {
	Intervention
	ClientName  string
	ClientEmail string
	ClientPhone string
}

// IsAllDay reports whether the intervention has no complete time range.
func (i *Intervention) IsAllDay() bool {
	return i.StartTime == "" || i.EndTime == ""
}

// Interval normalizes the stored date and times.
func (i *Intervention) Interval() (Interval, error) {
	return NormalizeInterval(i.Date, i.StartTime, i.EndTime)
}

// ParsedDate parses the stored date.
func (i *Intervention) ParsedDate() (time.Time, error) {
	return ParseDate(i.Date)
}

// Validate returns the field-level violations for an intervention about to be
// saved. Numero uniqueness and client existence need the store and are
// checked by the service.
func (i *Intervention) Validate() Violations {
	v := Violations{}
	if strings.TrimSpace(i.ClientID) == "" {
		v.Add("client", "client is required")
	}
	if strings.TrimSpace(i.Numero) == "" {
		v.Add("numero", "numero is required")
	}
	if strings.TrimSpace(i.Date) == "" {
		v.Add("date", "date is required")
	} else if _, err := ParseDate(i.Date); err != nil {
		v.Add("date", err.Error())
	}

	start, end := strings.TrimSpace(i.StartTime), strings.TrimSpace(i.EndTime)
	var s, e TimeOfDay
	var startErr, endErr error
	if start != "" {
		if s, startErr = ParseTimeOfDay(start); startErr != nil {
			v.Add("start_time", startErr.Error())
		}
	}
	if end != "" {
		if e, endErr = ParseTimeOfDay(end); endErr != nil {
			v.Add("end_time", endErr.Error())
		}
	}
	switch {
	case start != "" && end == "":
		v.Add("end_time", "end time is required when a start time is set")
	case start == "" && end != "":
		v.Add("start_time", "start time is required when an end time is set")
	case start != "" && startErr == nil && endErr == nil && e <= s:
		v.Add("end_time", ErrInvalidTimeRange.Error())
	}

	if !ValidLocations[i.Location] {
		v.Add("location", "location must be Domicile or À distance")
	}
	if !ValidPaymentStatuses[i.Payment] {
		v.Add("payment", "payment must be Payé, À payer or Gratuit")
	}
	return v
}

// ViolationCause maps a violation set to the sentinel that best describes it,
// so callers can use errors.Is on aggregated validation failures.
func ViolationCause(v Violations) error {
	var causes []error
	if msg, ok := v["date"]; ok && strings.Contains(msg, ErrInvalidDateFormat.Error()) {
		causes = append(causes, ErrInvalidDateFormat)
	}
	for _, f := range []string{"start_time", "end_time"} {
		msg, ok := v[f]
		if !ok {
			continue
		}
		if strings.Contains(msg, ErrInvalidTimeFormat.Error()) {
			causes = append(causes, ErrInvalidTimeFormat)
		}
		if msg == ErrInvalidTimeRange.Error() {
			causes = append(causes, ErrInvalidTimeRange)
		}
	}
	return errors.Join(causes...)
}
