package repository

import (
	"testing"
	"time"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateRejectsUnknownRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	err := repo.Create(&model.Notification{
		RecipientID: uuid.New(),
		Type:        model.TypeTaskCreated,
		Title:       "New task",
	})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestCreateManyWithNoRecipients(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	created, err := repo.CreateMany(nil, model.Notification{Type: model.TypeTaskCreated})
	require.NoError(t, err, "an empty fan-out is a normal outcome")
	assert.Empty(t, created)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	owner := seedUser(t, db, "owner", false, nil)
	intruder := seedUser(t, db, "intruder", false, nil)

	created, err := repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{
		Type:  model.TypeTaskCompleted,
		Title: "Task completed",
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	// Another recipient addressing the record is a not-found, never a mutation.
	err = repo.MarkRead(created[0].ID, intruder.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.MarkRead(created[0].ID, owner.ID))

	page, err := repo.List(owner.ID, NotificationFilters{})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.True(t, page.Records[0].IsRead)
	assert.Equal(t, int64(0), page.UnreadCount)
}

func TestDeleteScopedToRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	owner := seedUser(t, db, "owner", false, nil)
	intruder := seedUser(t, db, "intruder", false, nil)

	created, err := repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{
		Type:  model.TypeProjectCreated,
		Title: "New project",
	})
	require.NoError(t, err)

	err = repo.Delete(created[0].ID, intruder.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(created[0].ID, owner.ID))
	err = repo.Delete(created[0].ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListFiltersAndUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	owner := seedUser(t, db, "owner", false, nil)
	other := seedUser(t, db, "other", false, nil)

	seed := []model.Notification{
		{Type: model.TypeTaskCreated, Title: "a", Priority: model.PriorityMedium},
		{Type: model.TypeTaskCompleted, Title: "b", Priority: model.PriorityHigh},
		{Type: model.TypeProjectCreated, Title: "c", Priority: model.PriorityMedium},
	}
	for _, record := range seed {
		created, err := repo.CreateMany([]uuid.UUID{owner.ID}, record)
		require.NoError(t, err)
		require.Len(t, created, 1)
	}
	_, err := repo.CreateMany([]uuid.UUID{other.ID}, model.Notification{Type: model.TypeTaskCreated, Title: "not yours"})
	require.NoError(t, err)

	// Unfiltered: only the owner's records, newest first.
	page, err := repo.List(owner.ID, NotificationFilters{})
	require.NoError(t, err)
	assert.Len(t, page.Records, 3)
	assert.Equal(t, int64(3), page.UnreadCount)

	// Type filter.
	page, err = repo.List(owner.ID, NotificationFilters{Type: model.TypeTaskCompleted})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "b", page.Records[0].Title)

	// Read-state filter round-trip: mark one read, then filter both ways.
	require.NoError(t, repo.MarkRead(page.Records[0].ID, owner.ID))

	isRead := true
	page, err = repo.List(owner.ID, NotificationFilters{IsRead: &isRead})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "b", page.Records[0].Title)

	isRead = false
	page, err = repo.List(owner.ID, NotificationFilters{IsRead: &isRead})
	require.NoError(t, err)
	assert.Len(t, page.Records, 2)
	// The unread badge ignores the listing filters.
	assert.Equal(t, int64(2), page.UnreadCount)

	// Priority filter.
	page, err = repo.List(owner.ID, NotificationFilters{Priority: model.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "b", page.Records[0].Title)
}

func TestListPopulatesActors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	owner := seedUser(t, db, "owner", false, nil)
	actor := seedUser(t, db, "actor", false, nil)

	_, err := repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{
		Type:      model.TypeTaskCreated,
		Title:     "with actor",
		ActorID:   &actor.ID,
		ActorType: model.ActorStaff,
	})
	require.NoError(t, err)
	_, err = repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{
		Type:  model.TypeTaskCreated,
		Title: "without actor",
	})
	require.NoError(t, err)

	page, err := repo.List(owner.ID, NotificationFilters{})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)

	for _, record := range page.Records {
		if record.Title == "with actor" {
			require.NotNil(t, record.Actor)
			assert.Equal(t, actor.Name, record.Actor.Name)
		} else {
			assert.Nil(t, record.Actor)
		}
	}
}

func TestMarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	owner := seedUser(t, db, "owner", false, nil)
	for i := 0; i < 3; i++ {
		_, err := repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{Type: model.TypeTaskCreated, Title: "x"})
		require.NoError(t, err)
	}

	updated, err := repo.MarkAllRead(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	updated, err = repo.MarkAllRead(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestDeleteReadOlderThan(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	owner := seedUser(t, db, "owner", false, nil)

	oldRead, err := repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{Type: model.TypeTaskCreated, Title: "old read"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkRead(oldRead[0].ID, owner.ID))

	oldUnread, err := repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{Type: model.TypeTaskCreated, Title: "old unread"})
	require.NoError(t, err)

	// Backdate both "old" records past the cutoff.
	backdate := time.Now().Add(-48 * time.Hour)
	for _, record := range []model.Notification{oldRead[0], oldUnread[0]} {
		require.NoError(t, db.Model(&model.Notification{}).Where("id = ?", record.ID).
			Update("created_at", backdate).Error)
	}

	fresh, err := repo.CreateMany([]uuid.UUID{owner.ID}, model.Notification{Type: model.TypeTaskCreated, Title: "fresh read"})
	require.NoError(t, err)
	require.NoError(t, repo.MarkRead(fresh[0].ID, owner.ID))

	deleted, err := repo.DeleteReadOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted, "only read records past the cutoff are swept")

	page, err := repo.List(owner.ID, NotificationFilters{})
	require.NoError(t, err)
	assert.Len(t, page.Records, 2)
}
