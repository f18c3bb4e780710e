package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Type        string    `gorm:"type:varchar(16);not null;index"`
	Status      string    `gorm:"type:varchar(16);not null;index"`
	AmountUnits int64     `gorm:"not null"`
	Currency    string    `gorm:"type:varchar(16);not null"`
	FromAddress *string   `gorm:"type:varchar(255)"`
	ToAddress   *string   `gorm:"type:varchar(255)"`
	FeeUnits    *int64
	Note        *string `gorm:"type:text"`
	Hash        *string `gorm:"type:varchar(255);uniqueIndex"`
	Metadata    string  `gorm:"type:jsonb;default:'{}'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (Transaction) TableName() string { return "transactions" }
