package app

import (
	"time"

	"github.com/alexanderramin/clientpro/internal/scheduler"
)

// WeekRequest selects the week to display. The reference date is Date when
// set, else the first day of Month/Year when both are set, else today.
// Offset then moves the reference by whole weeks.
type WeekRequest struct {
	Now    *time.Time
	Date   string
	Month  int
	Year   int
	Offset int
}

type WeekResponse struct {
	Reference time.Time
	Grid      scheduler.WeekGrid
	// Total counts every intervention dated in the week, including those
	// hidden by the hour range.
	Total int
}

type WeekErrorCode string

const (
	WeekErrInvalidDate  WeekErrorCode = "INVALID_DATE"
	WeekErrInvalidMonth WeekErrorCode = "INVALID_MONTH"
)

type WeekError struct {
	Code    WeekErrorCode
	Message string
	Err     error
}

func (e *WeekError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *WeekError) Unwrap() error { return e.Err }
