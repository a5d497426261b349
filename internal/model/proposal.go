package model

import "github.com/google/uuid"

// Proposal statuses follow the sales funnel.
const (
	ProposalWarm      = "Warm"
	ProposalCold      = "Cold"
	ProposalHot       = "Hot"
	ProposalScrap     = "Scrap"
	ProposalConfirmed = "Confirmed"
)

type Proposal struct {
	BaseModel
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer    *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Services    string    `gorm:"type:varchar(255)" json:"services"` // e.g. "Home Cinema, Security System"
	Description string    `gorm:"type:text" json:"description"`
	Amount      int64     `gorm:"default:0" json:"amount"`
	Size        string    `gorm:"type:varchar(50)" json:"size"` // e.g. "1200 sqft"
	Status      string    `gorm:"type:varchar(20);default:'Warm'" json:"status" validate:"omitempty,oneof=Warm Cold Hot Scrap Confirmed"`
	Comment     string    `gorm:"type:text" json:"comment"`
}
