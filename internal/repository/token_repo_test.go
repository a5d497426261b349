package repository

import (
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIsIdempotentPerTokenString(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceTokenRepo(db)

	owner := seedUser(t, db, "owner", false, nil)

	first, err := repo.Register(&model.DeviceToken{
		Token:      "fcm-token-1",
		UserID:     &owner.ID,
		DeviceType: "mobile",
		Platform:   "android",
	})
	require.NoError(t, err)

	second, err := repo.Register(&model.DeviceToken{
		Token:      "fcm-token-1",
		UserID:     &owner.ID,
		DeviceType: "mobile",
		Platform:   "android",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-registration must not create a second row")

	var count int64
	require.NoError(t, db.Model(&model.DeviceToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterReassignsOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceTokenRepo(db)

	alice := seedUser(t, db, "alice", false, nil)
	bob := seedUser(t, db, "bob", false, nil)

	_, err := repo.Register(&model.DeviceToken{Token: "shared-device", UserID: &alice.ID})
	require.NoError(t, err)

	// Same physical device, new login: the token moves to the new account.
	record, err := repo.Register(&model.DeviceToken{Token: "shared-device", UserID: &bob.ID})
	require.NoError(t, err)
	require.NotNil(t, record.UserID)
	assert.Equal(t, bob.ID, *record.UserID)

	aliceTokens, err := repo.FindActiveByUserIDs([]uuid.UUID{alice.ID})
	require.NoError(t, err)
	assert.Empty(t, aliceTokens, "previous owner must no longer receive pushes on this token")
}

func TestDeleteByTokenIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceTokenRepo(db)

	owner := seedUser(t, db, "owner", false, nil)
	_, err := repo.Register(&model.DeviceToken{Token: "doomed", UserID: &owner.ID})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByToken("doomed"))
	require.NoError(t, repo.DeleteByToken("doomed"), "deleting an absent token is not an error")

	_, err = repo.FindByToken("doomed")
	assert.Error(t, err)
}

func TestFindActiveByUserIDsSkipsInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeviceTokenRepo(db)

	owner := seedUser(t, db, "owner", false, nil)
	_, err := repo.Register(&model.DeviceToken{Token: "active-token", UserID: &owner.ID})
	require.NoError(t, err)
	_, err = repo.Register(&model.DeviceToken{Token: "stale-token", UserID: &owner.ID})
	require.NoError(t, err)
	require.NoError(t, repo.DeactivateByUserID(owner.ID))

	_, err = repo.Register(&model.DeviceToken{Token: "fresh-token", UserID: &owner.ID})
	require.NoError(t, err)

	tokens, err := repo.FindActiveByUserIDs([]uuid.UUID{owner.ID})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "fresh-token", tokens[0].Token)
}
