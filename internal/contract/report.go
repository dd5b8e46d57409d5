package contract

import "github.com/alexanderramin/clientpro/internal/app"

type ReportPeriod = app.ReportPeriod

const (
	PeriodMonth  ReportPeriod = app.PeriodMonth
	PeriodYear   ReportPeriod = app.PeriodYear
	PeriodCustom ReportPeriod = app.PeriodCustom
)

type ReportRequest = app.ReportRequest

func NewReportRequest(period ReportPeriod) ReportRequest {
	return app.NewReportRequest(period)
}

type PaymentCount = app.PaymentCount

type ClientTotal = app.ClientTotal

type MonthCount = app.MonthCount

type ReportTotals = app.ReportTotals

type ReportResponse = app.ReportResponse

type ReportErrorCode = app.ReportErrorCode

const (
	ReportErrInvalidPeriod ReportErrorCode = app.ReportErrInvalidPeriod
	ReportErrInvalidRange  ReportErrorCode = app.ReportErrInvalidRange
)

type ReportError = app.ReportError
