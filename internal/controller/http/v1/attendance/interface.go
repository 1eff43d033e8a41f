package attendance

import (
	"context"

	"ems/backend/internal/repository/postgres/attendance"
	"ems/backend/internal/repository/postgres/settings"
)

type Attendance interface {
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (attendance.GetDetailByIdResponse, error)
	GetDashboard(ctx context.Context) ([]attendance.GetListResponse, error)
	GetStatistics(ctx context.Context) (attendance.GetStatisticResponse, error)
	GetPieChartStatistic(ctx context.Context) (attendance.PieChartResponse, error)
	GetBarChartStatistic(ctx context.Context) ([]attendance.BarChartResponse, error)
	GetReportRows(ctx context.Context, request attendance.ReportRequest) ([]attendance.ReportRow, error)

	TimeIn(ctx context.Context, request attendance.TimeInRequest) (attendance.EntryResponse, error)
	TimeOut(ctx context.Context, request attendance.TimeOutRequest) (attendance.ExitResponse, error)
	Scan(ctx context.Context, request attendance.ScanRequest) (attendance.ScanResponse, error)
	Delete(ctx context.Context, id int) error
}

type Settings interface {
	GetInfo(ctx context.Context) (settings.GetInfoResponse, error)
}
