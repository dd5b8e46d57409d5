package app

import "context"

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type WeekUseCase interface {
	Week(ctx context.Context, req WeekRequest) (*WeekResponse, error)
}

type ReportUseCase interface {
	Report(ctx context.Context, req ReportRequest) (*ReportResponse, error)
}
