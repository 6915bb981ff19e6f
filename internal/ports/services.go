package ports

import (
	"context"

	"github.com/vitaapp/core/internal/domain/entities"
)

// ResourceService defines the application operations of one resource.
type ResourceService interface {
	List(ctx context.Context) []entities.Record
	Create(ctx context.Context, fields entities.Record) (entities.Record, error)
	Update(ctx context.Context, id string, patch entities.Record) (entities.Record, error)
	Delete(ctx context.Context, id string) (entities.Record, error)
}

// ProfileService defines the operations of the profile singleton.
type ProfileService interface {
	Get(ctx context.Context) entities.Record
	Update(ctx context.Context, patch entities.Record) (entities.Record, error)
}

// DashboardSummary is the aggregate returned by GET /api/dashboard.
// LastActivity is the request timestamp, not a last-modified watermark.
type DashboardSummary struct {
	UrgentDeadlinesCount int     `json:"urgentDeadlinesCount"`
	CurrentMonthExpenses float64 `json:"currentMonthExpenses"`
	PropertyCount        int     `json:"propertyCount"`
	TotalPropertyValue   float64 `json:"totalPropertyValue"`
	VehicleCount         int     `json:"vehicleCount"`
	TotalVehicleValue    float64 `json:"totalVehicleValue"`
	LastActivity         string  `json:"lastActivity"`
}

// DashboardService computes the read-only dashboard aggregate.
type DashboardService interface {
	Summary(ctx context.Context) (DashboardSummary, error)
}
