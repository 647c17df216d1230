package Models

import (
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is a worker or administrator. The 4-digit PIN is the sole login
// credential; the unique index is what rejects duplicate PINs, racing
// creates included.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Pin       string    `json:"-" gorm:"size:4;not null;uniqueIndex"`
	Role      string    `json:"role" gorm:"size:20;not null;default:employee"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmployeeView is what admins see when listing or creating employees.
// The PIN never leaves the server.
type EmployeeView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func (u User) ToEmployeeView() EmployeeView {
	return EmployeeView{ID: u.ID, Name: u.Name, IsActive: u.IsActive}
}
