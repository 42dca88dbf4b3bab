package models

import (
	"time"

	"github.com/shrimpcfr/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Name         string              `gorm:"type:varchar(100);not null"`
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;default:'viewer'"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	PasswordHash string              `gorm:"type:varchar(255)"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Role:              m.Role,
		Status:            m.Status,
		PasswordHash:      m.PasswordHash,
		LastLoginAt:       m.LastLoginAt,
	}
}

// UserModelFromDomain creates a persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Status:       u.Status,
		PasswordHash: u.PasswordHash,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
