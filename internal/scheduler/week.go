package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/clientpro/internal/domain"
)

// DaysPerWeek is the width of the calendar window.
const DaysPerWeek = 7

// HourRange is the inclusive span of hour rows shown by the week grid.
type HourRange struct {
	First int
	Last  int
}

// DefaultHours covers 08:00 to 19:00, twelve rows.
var DefaultHours = HourRange{First: 8, Last: 19}

func (h HourRange) Validate() error {
	if h.First < 0 || h.Last > 23 || h.First > h.Last {
		return fmt.Errorf("invalid hour range %d-%d", h.First, h.Last)
	}
	return nil
}

func (h HourRange) Contains(hour int) bool {
	return hour >= h.First && hour <= h.Last
}

// Hours lists every hour row in order.
func (h HourRange) Hours() []int {
	hours := make([]int, 0, h.Last-h.First+1)
	for hr := h.First; hr <= h.Last; hr++ {
		hours = append(hours, hr)
	}
	return hours
}

// WeekStart returns the Monday of the ISO week containing d, at midnight UTC.
func WeekStart(d time.Time) time.Time {
	d = domain.DateOnly(d)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday closing the week containing d.
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, DaysPerWeek-1)
}

// Slot addresses one cell of the grid.
type Slot struct {
	Day  int // 0 = Monday
	Hour int
}

// WeekGrid is a week of interventions partitioned into hour cells and an
// all-day lane per day.
type WeekGrid struct {
	Start  time.Time
	Hours  HourRange
	Cells  map[Slot][]*domain.InterventionView
	AllDay [DaysPerWeek][]*domain.InterventionView
	// Hidden holds timed interventions of the week whose start hour falls
	// outside Hours. They are not shown in any cell.
	Hidden []*domain.InterventionView
}

// End is the Sunday of the grid's week.
func (g *WeekGrid) End() time.Time {
	return g.Start.AddDate(0, 0, DaysPerWeek-1)
}

// Day returns the date of column i.
func (g *WeekGrid) Day(i int) time.Time {
	return g.Start.AddDate(0, 0, i)
}

func (g *WeekGrid) Cell(day, hour int) []*domain.InterventionView {
	return g.Cells[Slot{Day: day, Hour: hour}]
}

// Len counts the interventions placed in cells and lanes.
func (g *WeekGrid) Len() int {
	n := 0
	for _, items := range g.Cells {
		n += len(items)
	}
	for _, items := range g.AllDay {
		n += len(items)
	}
	return n
}

// BucketWeek places each intervention dated within the week starting at
// weekStart into exactly one place: the all-day lane of its day when it has
// no start time, the cell of its start hour otherwise. An intervention is
// never split across hours and a cell keeps input order.
//
// weekStart is snapped to its Monday. Records dated outside the week, or
// whose date or start time does not parse, are left out without error.
func BucketWeek(items []*domain.InterventionView, weekStart time.Time, hours HourRange) WeekGrid {
	start := WeekStart(weekStart)
	end := start.AddDate(0, 0, DaysPerWeek)
	g := WeekGrid{
		Start: start,
		Hours: hours,
		Cells: make(map[Slot][]*domain.InterventionView),
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		d, err := domain.ParseDate(it.Date)
		if err != nil || d.Before(start) || !d.Before(end) {
			continue
		}
		day := int(d.Sub(start).Hours() / 24)

		if it.StartTime == "" {
			g.AllDay[day] = append(g.AllDay[day], it)
			continue
		}
		t, err := domain.ParseTimeOfDay(it.StartTime)
		if err != nil {
			continue
		}
		if !hours.Contains(t.Hour()) {
			g.Hidden = append(g.Hidden, it)
			continue
		}
		slot := Slot{Day: day, Hour: t.Hour()}
		g.Cells[slot] = append(g.Cells[slot], it)
	}
	return g
}
