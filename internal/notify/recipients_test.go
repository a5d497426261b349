package notify

import (
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSelector(db *gorm.DB) *Selector {
	users := repository.NewUserRepo(db)
	employees := repository.NewEmployeeRepo(db)
	return NewSelector(users, NewResolver(employees, users))
}

func TestSelectRecipientsExcludesActor(t *testing.T) {
	db := setupTestDB(t)
	selector := newSelector(db)

	actor := seedStaff(t, db, "actor", "Tasks")
	peer := seedStaff(t, db, "peer", "Tasks")

	set := selector.SelectRecipients("tasks", model.ActionView, ResolveActor(actor))
	assert.NotContains(t, set.All(), actor.ID, "the actor never notifies itself")
	assert.Contains(t, set.Staff, peer.ID)
}

func TestSelectRecipientsAssigneesClaimFirst(t *testing.T) {
	db := setupTestDB(t)
	selector := newSelector(db)

	actor := seedStaff(t, db, "actor", "Tasks")
	// Assigned AND area-permissioned: must land in the assignee pool only.
	both := seedStaff(t, db, "both", "Tasks")
	bothEmployee := seedEmployee(t, db, both)

	set := selector.SelectRecipients("tasks", model.ActionView, ResolveActor(actor),
		[]uuid.UUID{bothEmployee.ID})
	assert.Equal(t, []uuid.UUID{both.ID}, set.Assignees)
	assert.NotContains(t, set.Staff, both.ID, "a recipient appears in exactly one pool")
}

func TestSelectRecipientsAdminSuppressionIsOneWay(t *testing.T) {
	db := setupTestDB(t)
	selector := newSelector(db)

	staff := seedStaff(t, db, "staff", "Tasks")
	admin := seedUser(t, db, "admin", true)
	secondAdmin := seedUser(t, db, "admin2", true)

	// Staff actor: the full admin pool is notified.
	set := selector.SelectRecipients("tasks", model.ActionView, ResolveActor(staff))
	assert.ElementsMatch(t, []uuid.UUID{admin.ID, secondAdmin.ID}, set.Admins)

	// Admin actor: the entire admin pool is suppressed, not just the actor.
	set = selector.SelectRecipients("tasks", model.ActionView, ResolveActor(admin))
	assert.Empty(t, set.Admins)
	assert.Contains(t, set.Staff, staff.ID, "staff are still notified of admin actions")
}

func TestSelectRecipientsAdminClassStaysOutOfStaffPool(t *testing.T) {
	db := setupTestDB(t)
	selector := newSelector(db)

	actor := seedUser(t, db, "actor", true)
	// Admin-class by role name, but also carrying explicit permission rows.
	superRole := &model.Role{Name: "Superadmin"}
	require.NoError(t, db.Create(superRole).Error)
	hybrid := seedStaff(t, db, "hybrid", "Tasks")
	require.NoError(t, db.Model(hybrid).Update("role_id", superRole.ID).Error)

	set := selector.SelectRecipients("tasks", model.ActionView, ResolveActor(actor))
	// Admin actor suppresses the admin pool, and the hybrid's permission rows
	// must not leak it into the staff pool.
	assert.Empty(t, set.All())
}

func TestSelectRecipientsUnlinkedAssigneeIsDropped(t *testing.T) {
	db := setupTestDB(t)
	selector := newSelector(db)

	actor := seedStaff(t, db, "actor", "Tasks")
	orphan := &model.Employee{FirstName: "Orphan", Email: "orphan@example.com", Status: "active"}
	require.NoError(t, db.Create(orphan).Error)

	set := selector.SelectRecipients("tasks", model.ActionView, ResolveActor(actor),
		[]uuid.UUID{orphan.ID})
	assert.Empty(t, set.Assignees, "a directory record with no login identity cannot be notified")
}

func TestResolverFallsBackToEmailJoin(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepo(db)
	resolver := NewResolver(repository.NewEmployeeRepo(db), users)

	user := seedUser(t, db, "legacy", false)
	// Pre-link record: same email, no UserID.
	legacy := &model.Employee{FirstName: "Legacy", Email: user.Email, Status: "active"}
	require.NoError(t, db.Create(legacy).Error)

	resolved := resolver.EmployeeUserID(legacy.ID)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, *resolved)
}
