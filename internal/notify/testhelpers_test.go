package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"firebase.google.com/go/v4/messaging"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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

func seedUser(t *testing.T, db *gorm.DB, name string, isAdmin bool) *model.User {
	t.Helper()
	user := &model.User{
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
		Name:     name,
		IsAdmin:  isAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedStaff creates a login identity with a single area grant.
func seedStaff(t *testing.T, db *gorm.DB, name, area string) *model.User {
	t.Helper()
	user := seedUser(t, db, name, false)
	require.NoError(t, repository.NewUserRepo(db).ReplacePermissions(user.ID, []model.Permission{
		{Area: area, Actions: model.Actions{CanView: true, CanAdd: true, CanEdit: true}},
	}))
	return user
}

// seedEmployee creates a directory record linked to its login identity.
func seedEmployee(t *testing.T, db *gorm.DB, user *model.User) *model.Employee {
	t.Helper()
	employee := &model.Employee{
		FirstName: user.Name,
		Email:     user.Email,
		Status:    "active",
		UserID:    &user.ID,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func seedToken(t *testing.T, db *gorm.DB, userID uuid.UUID, token string) {
	t.Helper()
	_, err := repository.NewDeviceTokenRepo(db).Register(&model.DeviceToken{
		Token:  token,
		UserID: &userID,
	})
	require.NoError(t, err)
}

// fakeMessenger records sends and fails configured tokens.
type fakeMessenger struct {
	mu         sync.Mutex
	sent       []*messaging.Message
	failTokens map[string]bool
}

func (f *fakeMessenger) Send(ctx context.Context, message *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTokens[message.Token] {
		return "", errors.New("requested entity was not found")
	}
	f.sent = append(f.sent, message)
	return "projects/test/messages/1", nil
}

func (f *fakeMessenger) sentTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens := make([]string, len(f.sent))
	for i, msg := range f.sent {
		tokens[i] = msg.Token
	}
	return tokens
}
