package model

import "time"

// Follow is a directed "user follows seller" edge. The composite unique
// index keeps the edge set duplicate-free; inserting the same edge twice is
// reported as a conflict.
type Follow struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	SellerID  uint      `json:"seller_id" gorm:"not null;uniqueIndex:idx_follow_edge"`
	Seller    User      `json:"-" gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_follow_edge"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
