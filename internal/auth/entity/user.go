package entity

import "time"

// User 系统用户
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Username     string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"size:128;not null"`
	Name         string     `json:"name" gorm:"size:64;not null"`
	Email        string     `json:"email" gorm:"size:128"`
	Role         string     `json:"role" gorm:"size:32;not null"`
	Status       string     `json:"status" gorm:"size:16;not null"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "auth_users"
}

// 用户角色
const (
	RoleAdmin        = "admin"
	RoleMerchandiser = "merchandiser"
	RoleViewer       = "viewer"
)

// ValidRoles 可分配的角色
var ValidRoles = map[string]bool{
	RoleAdmin:        true,
	RoleMerchandiser: true,
	RoleViewer:       true,
}

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
