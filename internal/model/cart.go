package model

import "time"

// CartEntry is one product reference in a user's cart. There is no quantity
// column: adding the same product twice creates two rows.
type CartEntry struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID uint      `json:"product_id" gorm:"not null"`
	Product   Product   `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartEntry) TableName() string {
	return "cart"
}
