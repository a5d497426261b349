package service

import (
	"context"
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployeeLinksLoginIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(repository.NewEmployeeRepo(db), repository.NewUserRepo(db), newTestDispatcher(db))
	actor := seedActor(t, db, "admin", true)

	login := &model.User{Email: "ravi@example.com", Password: "x", Name: "Ravi", IsActive: true}
	require.NoError(t, db.Create(login).Error)

	employee, err := svc.CreateEmployee(context.Background(), &EmployeeRequest{
		FirstName: "Ravi",
		Email:     "ravi@example.com",
	}, actor)
	require.NoError(t, err)
	require.NotNil(t, employee.UserID)
	assert.Equal(t, login.ID, *employee.UserID)
}

func TestCreateEmployeeWithoutLoginLeavesLinkEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(repository.NewEmployeeRepo(db), repository.NewUserRepo(db), newTestDispatcher(db))
	actor := seedActor(t, db, "admin", true)

	employee, err := svc.CreateEmployee(context.Background(), &EmployeeRequest{
		FirstName: "Unlinked",
		Email:     "unlinked@example.com",
	}, actor)
	require.NoError(t, err)
	assert.Nil(t, employee.UserID)
}

func TestUpdateEmployeeEmailRelinksIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(repository.NewEmployeeRepo(db), repository.NewUserRepo(db), newTestDispatcher(db))
	actor := seedActor(t, db, "admin", true)

	oldLogin := &model.User{Email: "old@example.com", Password: "x", Name: "Old", IsActive: true}
	newLogin := &model.User{Email: "new@example.com", Password: "x", Name: "New", IsActive: true}
	require.NoError(t, db.Create(oldLogin).Error)
	require.NoError(t, db.Create(newLogin).Error)

	employee, err := svc.CreateEmployee(context.Background(), &EmployeeRequest{
		FirstName: "Mover",
		Email:     "old@example.com",
	}, actor)
	require.NoError(t, err)
	require.Equal(t, oldLogin.ID, *employee.UserID)

	updated, err := svc.UpdateEmployee(context.Background(), employee.ID, &EmployeeRequest{
		FirstName: "Mover",
		Email:     "new@example.com",
	}, actor)
	require.NoError(t, err)
	require.NotNil(t, updated.UserID)
	assert.Equal(t, newLogin.ID, *updated.UserID)
}

func TestCreateEmployeeRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEmployeeService(repository.NewEmployeeRepo(db), repository.NewUserRepo(db), newTestDispatcher(db))
	actor := seedActor(t, db, "admin", true)

	_, err := svc.CreateEmployee(context.Background(), &EmployeeRequest{
		FirstName: "First",
		Email:     "dup@example.com",
	}, actor)
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), &EmployeeRequest{
		FirstName: "Second",
		Email:     "dup@example.com",
	}, actor)
	assert.ErrorIs(t, err, ErrEmployeeEmailExists)
}

func TestDeleteEmployeeNotifiesDirectoryViewers(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	svc := NewEmployeeService(repository.NewEmployeeRepo(db), userRepo, newTestDispatcher(db))
	actor := seedActor(t, db, "admin", true)

	hr := &model.User{Email: "hr@example.com", Password: "x", Name: "HR", IsActive: true}
	require.NoError(t, db.Create(hr).Error)
	require.NoError(t, userRepo.ReplacePermissions(hr.ID, []model.Permission{
		{Area: "Employees", Actions: model.Actions{CanView: true}},
	}))

	employee, err := svc.CreateEmployee(context.Background(), &EmployeeRequest{
		FirstName: "Leaver",
		Email:     "leaver@example.com",
	}, actor)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteEmployee(context.Background(), employee.ID, actor))

	page, err := repository.NewNotificationRepo(db).List(hr.ID, repository.NotificationFilters{})
	require.NoError(t, err)
	require.Len(t, page.Records, 2, "one record per lifecycle event")
	types := []string{page.Records[0].Type, page.Records[1].Type}
	assert.ElementsMatch(t, []string{model.TypeEmployeeCreated, model.TypeEmployeeDeleted}, types)
}
