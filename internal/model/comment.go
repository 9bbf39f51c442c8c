package model

import "time"

type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BoardID  uint   `gorm:"not null;index" json:"board_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Nickname string `gorm:"size:64;not null" json:"nickname"`
	Ownership
	Board     *Board    `gorm:"foreignKey:BoardID" json:"-"`
	Member    *Member   `gorm:"foreignKey:MemberID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
