package repository

import (
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAdminsFlagAndRoleName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	superRole := &model.Role{Name: "Super Admin"}
	require.NoError(t, db.Create(superRole).Error)
	staffRole := &model.Role{Name: "Technician"}
	require.NoError(t, db.Create(staffRole).Error)

	flagged := seedUser(t, db, "flagged", true, nil)
	byRole := seedUser(t, db, "byrole", false, &superRole.ID)
	staff := seedUser(t, db, "staff", false, &staffRole.ID)
	inactive := seedUser(t, db, "inactive", true, nil)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	admins, err := repo.FindAdmins()
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, admin := range admins {
		ids[admin.ID.String()] = true
	}
	assert.True(t, ids[flagged.ID.String()], "explicit flag should qualify")
	assert.True(t, ids[byRole.ID.String()], "admin role name should qualify case-insensitively")
	assert.False(t, ids[staff.ID.String()], "staff role should not qualify")
	assert.False(t, ids[inactive.ID.String()], "inactive accounts are never recipients")
}

func TestFindPermittedCaseInsensitiveContainment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	granted := seedUser(t, db, "granted", false, nil)
	require.NoError(t, repo.ReplacePermissions(granted.ID, []model.Permission{
		{Area: "Projects", Actions: model.Actions{CanView: true}},
	}))

	viewless := seedUser(t, db, "viewless", false, nil)
	require.NoError(t, repo.ReplacePermissions(viewless.ID, []model.Permission{
		{Area: "Projects", Actions: model.Actions{CanAdd: true}},
	}))

	other := seedUser(t, db, "other", false, nil)
	require.NoError(t, repo.ReplacePermissions(other.ID, []model.Permission{
		{Area: "Tasks", Actions: model.Actions{CanView: true}},
	}))

	// Stored area "Projects" must match a lookup for "projects".
	users, err := repo.FindPermitted("projects", model.ActionView)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, granted.ID, users[0].ID)

	// And the reverse: stored lowercase, queried capitalized.
	require.NoError(t, repo.ReplacePermissions(granted.ID, []model.Permission{
		{Area: "projects", Actions: model.Actions{CanView: true}},
	}))
	users, err = repo.FindPermitted("Projects", model.ActionView)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, granted.ID, users[0].ID)
}

func TestFindPermittedRejectsUnknownAction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	_, err := repo.FindPermitted("projects", "drop table")
	assert.Error(t, err)
}

func TestReplacePermissionsRewritesRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	user := seedUser(t, db, "perms", false, nil)
	require.NoError(t, repo.ReplacePermissions(user.ID, []model.Permission{
		{Area: "Tasks", Actions: model.Actions{CanView: true}},
		{Area: "Projects", Actions: model.Actions{CanView: true, CanEdit: true}},
	}))

	require.NoError(t, repo.ReplacePermissions(user.ID, []model.Permission{
		{Area: "Customers", Actions: model.Actions{CanView: true}},
	}))

	reloaded, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Permissions, 1)
	assert.Equal(t, "Customers", reloaded.Permissions[0].Area)
}

func TestFindByRoleID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	role := &model.Role{Name: "Installer"}
	require.NoError(t, db.Create(role).Error)

	seedUser(t, db, "one", false, &role.ID)
	seedUser(t, db, "two", false, &role.ID)
	seedUser(t, db, "unrelated", false, nil)

	users, err := repo.FindByRoleID(role.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
