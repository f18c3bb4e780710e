package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	EmployeeNumber string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	FirstName      string    `gorm:"type:varchar(128);not null"`
	LastName       string    `gorm:"type:varchar(128);not null"`
	Email          string    `gorm:"type:varchar(255);not null"`
	Position       string    `gorm:"type:varchar(128)"`
	Department     string    `gorm:"type:varchar(128)"`
	SalaryUnits    int64     `gorm:"not null"`
	Currency       string    `gorm:"type:varchar(16);not null"`
	Status         string    `gorm:"type:varchar(16);not null;index"`
	JoinedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (Employee) TableName() string { return "employees" }
