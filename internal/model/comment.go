package model

import "time"

// Comment is a user comment on a product. Likes holds an absolute counter
// that callers overwrite through the set-likes operation.
type Comment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Product   Product   `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Likes     int       `json:"likes" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
