package repository

import (
	"errors"
	"time"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrRecipientNotFound is returned when a notification names a recipient that
// does not resolve to any login identity.
var ErrRecipientNotFound = errors.New("notification recipient not found")

// NotificationFilters narrow a listing. Zero values mean "no filter".
type NotificationFilters struct {
	Type     string
	IsRead   *bool
	Priority string
	Page     int
	Limit    int
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NotificationPage is one page of a recipient's notifications. UnreadCount is
// scoped only by recipient and unread state, regardless of the page filters.
type NotificationPage struct {
	Records     []model.Notification `json:"records"`
	Pagination  Pagination           `json:"pagination"`
	UnreadCount int64                `json:"unread_count"`
}

type NotificationRepository interface {
	Create(notification *model.Notification) error
	CreateMany(recipientIDs []uuid.UUID, template model.Notification) ([]model.Notification, error)
	List(recipientID uuid.UUID, filters NotificationFilters) (*NotificationPage, error)
	MarkRead(id, recipientID uuid.UUID) error
	MarkAllRead(recipientID uuid.UUID) (int64, error)
	Delete(id, recipientID uuid.UUID) error
	MarkPushSent(ids []uuid.UUID) error
	DeleteReadOlderThan(age time.Duration) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db}
}

// Create persists one record after checking the recipient resolves to a login
// identity. Referential integrity is application-checked at write time only.
func (r *notificationRepo) Create(notification *model.Notification) error {
	var count int64
	if err := r.db.Model(&model.User{}).Where("id = ?", notification.RecipientID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecipientNotFound
	}
	return r.db.Create(notification).Error
}

// CreateMany bulk-inserts one record per recipient sharing the template's
// type, title, body and payload. A zero-recipient fan-out is a normal outcome:
// it logs and returns an empty slice without error.
func (r *notificationRepo) CreateMany(recipientIDs []uuid.UUID, template model.Notification) ([]model.Notification, error) {
	if len(recipientIDs) == 0 {
		log.Debug().Str("type", template.Type).Msg("notification fan-out had no recipients")
		return []model.Notification{}, nil
	}

	records := make([]model.Notification, len(recipientIDs))
	for i, recipientID := range recipientIDs {
		record := template
		record.ID = uuid.Nil // Assigned by the BeforeCreate hook
		record.RecipientID = recipientID
		records[i] = record
	}

	if err := r.db.Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *notificationRepo) List(recipientID uuid.UUID, filters NotificationFilters) (*NotificationPage, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}

	query := r.db.Model(&model.Notification{}).Where("recipient_id = ?", recipientID)
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.IsRead != nil {
		query = query.Where("is_read = ?", *filters.IsRead)
	}
	if filters.Priority != "" {
		query = query.Where("priority = ?", filters.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var records []model.Notification
	offset := (filters.Page - 1) * filters.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filters.Limit).Find(&records).Error; err != nil {
		return nil, err
	}

	r.populateActors(records)

	// Unread count ignores the listing filters on purpose: it drives the badge.
	var unread int64
	if err := r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&unread).Error; err != nil {
		return nil, err
	}

	totalPages := total / int64(filters.Limit)
	if total%int64(filters.Limit) != 0 {
		totalPages++
	}

	return &NotificationPage{
		Records: records,
		Pagination: Pagination{
			Page:       filters.Page,
			Limit:      filters.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
		UnreadCount: unread,
	}, nil
}

// populateActors joins the actor summary onto each record. The actor type
// discriminator picks the identity space; with the merged login-identity table
// both tags resolve against users. A miss on one record nulls out that
// record's actor only, never the listing.
func (r *notificationRepo) populateActors(records []model.Notification) {
	ids := make([]uuid.UUID, 0, len(records))
	seen := make(map[uuid.UUID]bool)
	for _, record := range records {
		if record.ActorID != nil && !seen[*record.ActorID] {
			seen[*record.ActorID] = true
			ids = append(ids, *record.ActorID)
		}
	}
	if len(ids) == 0 {
		return
	}

	var actors []model.User
	if err := r.db.Unscoped().Where("id IN ?", ids).Find(&actors).Error; err != nil {
		log.Warn().Err(err).Msg("actor lookup failed, returning notifications without actor info")
		return
	}

	byID := make(map[uuid.UUID]*model.ActorInfo, len(actors))
	for i := range actors {
		byID[actors[i].ID] = &model.ActorInfo{
			ID:    actors[i].ID,
			Name:  actors[i].Name,
			Email: actors[i].Email,
		}
	}
	for i := range records {
		if records[i].ActorID != nil {
			records[i].Actor = byID[*records[i].ActorID]
		}
	}
}

// MarkRead flips the read flag. Ownership is expressed via the query filter:
// touching another recipient's record is a not-found, not a permission error.
func (r *notificationRepo) MarkRead(id, recipientID uuid.UUID) error {
	result := r.db.Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(recipientID uuid.UUID) (int64, error) {
	result := r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepo) Delete(id, recipientID uuid.UUID) error {
	result := r.db.Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&model.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) MarkPushSent(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	return r.db.Model(&model.Notification{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{"push_sent": true, "push_sent_at": now}).Error
}

// DeleteReadOlderThan is the retention sweep: read records older than the
// cutoff are removed for good.
func (r *notificationRepo) DeleteReadOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	result := r.db.Unscoped().
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
