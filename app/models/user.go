package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

type User struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password    string     `json:"-" gorm:"not null" validate:"required,min=6"`
	DisplayName string     `json:"display_name" gorm:"not null" validate:"required"`
	Role        string     `json:"role" gorm:"not null;default:'teacher'" validate:"required,oneof=admin teacher"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
