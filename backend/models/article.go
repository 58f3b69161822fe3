package models

import "time"

// Article is one news entry. Date defaults to creation time and is reset
// on every edit, it is not preserved across updates.
type Article struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Date        time.Time `json:"date"`
}
