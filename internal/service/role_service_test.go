package service

import (
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRoleCascadesToUsers(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	roleService := NewRoleService(roleRepo, userRepo)
	userService := NewUserService(userRepo, roleRepo)

	role, err := roleService.CreateRole(&RoleRequest{
		Name: "Technician",
		Permissions: []PermissionInput{
			{Area: "Tasks", CanView: true, CanEdit: true},
		},
	})
	require.NoError(t, err)

	user, err := userService.CreateUser(&CreateUserRequest{
		Email:    "tech@example.com",
		Password: "secret123",
		Name:     "Tech",
		RoleID:   &role.ID,
	}, "system")
	require.NoError(t, err)
	require.Len(t, user.Permissions, 1, "role permissions are copied on create")

	// Rewriting the role replaces every holder's permission rows in bulk.
	_, err = roleService.UpdateRole(role.ID, &RoleRequest{
		Name: "Technician",
		Permissions: []PermissionInput{
			{Area: "Tasks", CanView: true},
			{Area: "Projects", CanView: true},
		},
	})
	require.NoError(t, err)

	reloaded, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Permissions, 2)

	areas := []string{reloaded.Permissions[0].Area, reloaded.Permissions[1].Area}
	assert.ElementsMatch(t, []string{"Tasks", "Projects"}, areas)
	for _, p := range reloaded.Permissions {
		if p.Area == "Tasks" {
			assert.False(t, p.CanEdit, "revoked action flags must not survive the cascade")
		}
	}
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	roleService := NewRoleService(repository.NewRoleRepo(db), repository.NewUserRepo(db))

	_, err := roleService.CreateRole(&RoleRequest{Name: "Installer"})
	require.NoError(t, err)

	_, err = roleService.CreateRole(&RoleRequest{Name: "Installer"})
	assert.ErrorIs(t, err, ErrRoleNameExists)
}

func TestDeleteRoleRefusesWhileAssigned(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	roleService := NewRoleService(roleRepo, userRepo)
	userService := NewUserService(userRepo, roleRepo)

	role, err := roleService.CreateRole(&RoleRequest{Name: "Installer"})
	require.NoError(t, err)

	user, err := userService.CreateUser(&CreateUserRequest{
		Email:    "holder@example.com",
		Password: "secret123",
		Name:     "Holder",
		RoleID:   &role.ID,
	}, "system")
	require.NoError(t, err)

	assert.Error(t, roleService.DeleteRole(role.ID))

	require.NoError(t, userService.DeleteUser(user.ID))
	assert.NoError(t, roleService.DeleteRole(role.ID))
}

func TestUpdateUserResyncsPermissionsWithNewRole(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	roleService := NewRoleService(roleRepo, userRepo)
	userService := NewUserService(userRepo, roleRepo)

	tasksRole, err := roleService.CreateRole(&RoleRequest{
		Name:        "Tasks Only",
		Permissions: []PermissionInput{{Area: "Tasks", CanView: true}},
	})
	require.NoError(t, err)
	projectsRole, err := roleService.CreateRole(&RoleRequest{
		Name:        "Projects Only",
		Permissions: []PermissionInput{{Area: "Projects", CanView: true}},
	})
	require.NoError(t, err)

	user, err := userService.CreateUser(&CreateUserRequest{
		Email:    "mover@example.com",
		Password: "secret123",
		Name:     "Mover",
		RoleID:   &tasksRole.ID,
	}, "system")
	require.NoError(t, err)

	updated, err := userService.UpdateUser(user.ID, &UpdateUserRequest{
		Email:  "mover@example.com",
		Name:   "Mover",
		RoleID: &projectsRole.ID,
	}, "system")
	require.NoError(t, err)
	require.Len(t, updated.Permissions, 1)
	assert.Equal(t, "Projects", updated.Permissions[0].Area)
}

func TestUpdateUserWithoutRoleClearsPermissions(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	roleService := NewRoleService(roleRepo, userRepo)
	userService := NewUserService(userRepo, roleRepo)

	role, err := roleService.CreateRole(&RoleRequest{
		Name:        "Temp",
		Permissions: []PermissionInput{{Area: "Tasks", CanView: true}},
	})
	require.NoError(t, err)

	user, err := userService.CreateUser(&CreateUserRequest{
		Email:    "temp@example.com",
		Password: "secret123",
		Name:     "Temp",
		RoleID:   &role.ID,
	}, "system")
	require.NoError(t, err)

	updated, err := userService.UpdateUser(user.ID, &UpdateUserRequest{
		Email: "temp@example.com",
		Name:  "Temp",
	}, "system")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Permission{}).Where("user_id = ?", updated.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
