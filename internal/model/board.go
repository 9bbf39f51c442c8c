package model

import "time"

type Board struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Nickname  string `gorm:"size:64;not null;index" json:"nickname"`
	Ownership
	Member    *Member   `gorm:"foreignKey:MemberID" json:"-"`
	Views     uint      `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardSummary is a list row: a board without its content, plus the number of
// comments attached to it.
type BoardSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Nickname     string    `json:"nickname"`
	MemberID     *uint     `json:"member_id"`
	Views        uint      `json:"views"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
