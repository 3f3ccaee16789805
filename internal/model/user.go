package model

import "time"

// User roles. No other roles are defined.
const (
	RoleBuyer  = 1
	RoleSeller = 2
)

// User represents a buyer or seller account. The unique indexes on username
// and email back the single-insert registration flow: a duplicate surfaces as
// a store conflict instead of requiring a pre-check query.
//
// Passwords are stored verbatim. Hardening the credential check is out of
// scope for this service.
type User struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Username    string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"`
	Email       string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Active      bool      `json:"active" gorm:"default:true"`
	Mobile      string    `json:"mobile" gorm:"type:varchar(30)"`
	Role        int       `json:"role" gorm:"not null"`
	Name        string    `json:"name" gorm:"type:varchar(255)"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
