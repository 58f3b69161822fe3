package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanPro     = "pro"
)

type User struct {
	gorm.Model
	Username         string     `gorm:"unique;not null" json:"username"`
	Email            string     `gorm:"unique;not null" json:"email"`
	PasswordHash     string     `gorm:"not null" json:"-"`
	Role             string     `gorm:"default:user" json:"role"` // user, admin
	Plan             string     `gorm:"default:free" json:"plan"`
	SubscriptionEnd  *time.Time `json:"subscriptionEnd,omitempty"`
	GenerationsCount int        `gorm:"default:0" json:"generationsCount"`
}

// PlanLimit returns how many generation calls a plan allows in total.
func PlanLimit(plan string) int {
	switch plan {
	case PlanPro:
		return 10000
	case PlanStarter:
		return 100
	default:
		return 10
	}
}

// CanGenerate reports whether the user still has generation budget left.
func (u *User) CanGenerate() bool {
	return u.GenerationsCount < PlanLimit(u.Plan)
}
