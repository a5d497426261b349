package service

import (
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/notify"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&model.User{}, &model.Role{}, &model.RolePermission{}, &model.Permission{},
		&model.Employee{}, &model.Customer{}, &model.Proposal{}, &model.Project{},
		&model.Task{}, &model.Notification{}, &model.DeviceToken{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// newTestDispatcher wires a pipeline with no push provider and no web feed;
// persistence still happens, which is what the service tests observe.
func newTestDispatcher(db *gorm.DB) *notify.Dispatcher {
	users := repository.NewUserRepo(db)
	employees := repository.NewEmployeeRepo(db)
	dispatcher := notify.NewDispatcher(
		repository.NewNotificationRepo(db),
		notify.NewSelector(users, notify.NewResolver(employees, users)),
		notify.NewEngine(repository.NewDeviceTokenRepo(db), nil),
		nil,
	)
	dispatcher.DeliverInline = true
	return dispatcher
}

func seedActor(t *testing.T, db *gorm.DB, name string, isAdmin bool) notify.Actor {
	t.Helper()
	user := &model.User{
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
		Name:     name,
		IsAdmin:  isAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return notify.ResolveActor(user)
}
