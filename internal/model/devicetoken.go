package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceToken is one provider-issued push token for an installed app
// instance. The token string is globally unique regardless of owner:
// re-registration from a different account overwrites ownership instead of
// creating a duplicate. A token that fails a delivery attempt is deleted
// outright, so re-registration is required after any failure.
type DeviceToken struct {
	BaseModel
	Token      string     `gorm:"type:varchar(512);uniqueIndex;not null" json:"token" validate:"required"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	DeviceType string     `gorm:"type:varchar(50)" json:"device_type"` // e.g. "mobile", "web"
	Platform   string     `gorm:"type:varchar(50)" json:"platform"`    // e.g. "android", "ios"
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}
