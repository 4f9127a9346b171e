package get_sales_report

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/sales/models"
)

type SalesService interface {
	Report(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
