package services

import (
	"context"
	"time"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/ports"
)

// urgentWindowDays is how far ahead a pending deadline still counts as
// urgent, inclusive of both endpoints.
const urgentWindowDays = 30

// DashboardService computes the read-only dashboard aggregate from five
// independent collection reads. The reads are not a snapshot: each file
// is loaded at a slightly different instant, which is accepted.
type DashboardService struct {
	deadlines  ports.RecordRepository
	events     ports.RecordRepository
	expenses   ports.RecordRepository
	properties ports.RecordRepository
	vehicles   ports.RecordRepository
	logger     *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(deadlines, events, expenses, properties, vehicles ports.RecordRepository, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		deadlines:  deadlines,
		events:     events,
		expenses:   expenses,
		properties: properties,
		vehicles:   vehicles,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary computes the dashboard aggregate. LastActivity is the request
// timestamp, not derived from record activity.
func (s *DashboardService) Summary(ctx context.Context) (ports.DashboardSummary, error) {
	deadlines := s.deadlines.List(ctx)
	_ = s.events.List(ctx) // loaded with the others; no aggregate uses events yet
	expenses := s.expenses.List(ctx)
	properties := s.properties.List(ctx)
	vehicles := s.vehicles.List(ctx)

	now := s.now()

	summary := ports.DashboardSummary{
		UrgentDeadlinesCount: countUrgentDeadlines(deadlines, now),
		CurrentMonthExpenses: sumCurrentMonthExpenses(expenses, now),
		PropertyCount:        len(properties),
		TotalPropertyValue:   sumField(properties, "currentValue"),
		VehicleCount:         len(vehicles),
		TotalVehicleValue:    sumField(vehicles, "currentValue"),
		LastActivity:         now.Format(time.RFC3339),
	}

	s.logger.Debug("Dashboard summary computed",
		"urgent_deadlines", summary.UrgentDeadlinesCount,
		"current_month_expenses", summary.CurrentMonthExpenses,
	)

	return summary, nil
}

// countUrgentDeadlines counts pending deadlines due within the urgent
// window. Comparison is by calendar day: ISO day strings order
// lexically, which sidesteps time zone offsets between stored dates and
// server time.
func countUrgentDeadlines(deadlines []entities.Record, now time.Time) int {
	today := now.Format(isoDay)
	horizon := now.AddDate(0, 0, urgentWindowDays).Format(isoDay)

	count := 0
	for _, deadline := range deadlines {
		// The frontend has stored both spellings over time.
		if deadline.Bool("completed") || deadline.Bool("isCompleted") {
			continue
		}
		due, ok := deadline.Date("dueDate")
		if !ok {
			continue
		}
		day := due.Format(isoDay)
		if day < today || day > horizon {
			continue
		}
		count++
	}
	return count
}

// sumCurrentMonthExpenses sums amounts of expenses dated in the same
// calendar month and year as now, in server local time.
func sumCurrentMonthExpenses(expenses []entities.Record, now time.Time) float64 {
	total := 0.0
	for _, expense := range expenses {
		date, ok := expense.Date("date")
		if !ok {
			continue
		}
		if date.Year() != now.Year() || date.Month() != now.Month() {
			continue
		}
		total += expense.Number("amount")
	}
	return total
}

func sumField(records []entities.Record, key string) float64 {
	total := 0.0
	for _, record := range records {
		total += record.Number(key)
	}
	return total
}

const isoDay = "2006-01-02"
