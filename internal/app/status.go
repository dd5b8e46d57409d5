package app

import (
	"time"

	"github.com/alexanderramin/clientpro/internal/domain"
)

type StatusRequest struct {
	Now         *time.Time
	RecentLimit int
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{RecentLimit: 5}
}

type StatusSummary struct {
	GeneratedAt   time.Time
	ActiveClients int
	Interventions int
	Todo          int
	Unpaid        int
}

type StatusResponse struct {
	Summary  StatusSummary
	Today    []*domain.InterventionView
	Recent   []*domain.InterventionView
	Warnings []string
}
