package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Priyanka-kale21/webhack/internal/service"
)

// openPingDB returns a GORM DB whose pings are scripted by the caller. GORM
// pings once while opening.
func openPingDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mock.ExpectPing().WillReturnError(nil)
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestHealthService(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		hs := service.NewHealthService(nil, "webhack")
		status := hs.Check()

		assert.Equal(t, "webhack", status.Service)
		assert.Equal(t, service.DatabaseDisabled, status.Database)
		assert.True(t, status.Healthy)
		assert.WithinDuration(t, time.Now().UTC(), status.Checked, time.Minute)
	})

	t.Run("Healthy Database", func(t *testing.T) {
		gdb, mock := openPingDB(t)
		mock.ExpectPing().WillReturnError(nil)

		status := service.NewHealthService(gdb, "webhack").Check()

		assert.Equal(t, service.DatabaseHealthy, status.Database)
		assert.True(t, status.Healthy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unhealthy Database", func(t *testing.T) {
		gdb, mock := openPingDB(t)
		mock.ExpectPing().WillReturnError(errors.New("ping error"))

		status := service.NewHealthService(gdb, "webhack").Check()

		assert.Equal(t, service.DatabaseUnhealthy, status.Database)
		assert.False(t, status.Healthy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
