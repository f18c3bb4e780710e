package models

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	InvoiceNumber string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ClientName    string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	AmountUnits   int64     `gorm:"not null"`
	Currency      string    `gorm:"type:varchar(16);not null"`
	Status        string    `gorm:"type:varchar(16);not null;index"`
	DueDate       *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (Invoice) TableName() string { return "invoices" }
