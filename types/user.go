package types

import (
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	gorm.Model
	Username          string `gorm:"uniqueIndex;not null"`
	Password          string `gorm:"not null"`
	Role              string `gorm:"not null;default:student"`
	PushSubscriptions []PushSubscription
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// ValidRole reports whether role is one a user can register with.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}
