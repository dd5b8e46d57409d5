package contract

import "github.com/alexanderramin/clientpro/internal/app"

type WeekRequest = app.WeekRequest

type WeekResponse = app.WeekResponse

type WeekErrorCode = app.WeekErrorCode

const (
	WeekErrInvalidDate  WeekErrorCode = app.WeekErrInvalidDate
	WeekErrInvalidMonth WeekErrorCode = app.WeekErrInvalidMonth
)

type WeekError = app.WeekError
