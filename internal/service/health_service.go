package service

import (
	"time"

	"gorm.io/gorm"
)

// Database states reported by HealthService.
const (
	DatabaseHealthy   = "healthy"
	DatabaseUnhealthy = "unhealthy"
	DatabaseDisabled  = "disabled"
)

type HealthStatus struct {
	Service  string
	Database string
	Healthy  bool
	Checked  time.Time
}
type HealthService interface {
	Check() *HealthStatus
}

type healthService struct {
	name  string
	probe func() (string, bool)
}

// NewHealthService reports on the process and, when db is non-nil, on the
// database connection. Running without a database is healthy: audits still
// work, only history is unavailable.
func NewHealthService(db *gorm.DB, name string) HealthService {
	return &healthService{
		name: name,
		probe: func() (string, bool) {
			if db == nil {
				return DatabaseDisabled, true
			}
			sqlDB, err := db.DB()
			if err != nil {
				return DatabaseUnhealthy, false
			}
			if pingErr := sqlDB.Ping(); pingErr != nil {
				return DatabaseUnhealthy, false
			}
			return DatabaseHealthy, true
		},
	}
}

func (h *healthService) Check() *HealthStatus {
	dbStatus, ok := h.probe()
	return &HealthStatus{
		Service:  h.name,
		Database: dbStatus,
		Healthy:  ok,
		Checked:  time.Now().UTC(),
	}
}
