package contract

import "github.com/alexanderramin/clientpro/internal/app"

type StatusRequest = app.StatusRequest

func NewStatusRequest() StatusRequest {
	return app.NewStatusRequest()
}

type StatusSummary = app.StatusSummary

type StatusResponse = app.StatusResponse
