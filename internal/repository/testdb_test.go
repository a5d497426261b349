package repository

import (
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

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

// seedUser inserts a minimal login identity.
func seedUser(t *testing.T, db *gorm.DB, name string, isAdmin bool, roleID *uint) *model.User {
	t.Helper()
	user := &model.User{
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
		Name:     name,
		IsAdmin:  isAdmin,
		RoleID:   roleID,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error, "failed to seed user")
	return user
}
