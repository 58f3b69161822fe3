package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tool is one directory listing. ID stays empty until the entity is
// persisted; the store assigns a UUID on create.
type Tool struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // Writing, Image, Video, Audio, Coding, Business, ...
	Price       string    `json:"price"`    // free text: "Free", "Freemium", "Paid ($X/mo)", ...
	Website     string    `json:"website"`
	ImageURL    string    `json:"imageUrl"`

	Tags datatypes.JSONSlice[string] `json:"tags"`

	// Detailed information
	Features datatypes.JSONSlice[string] `json:"features,omitempty"`
	UseCases datatypes.JSONSlice[string] `json:"useCases,omitempty"`
	Pros     datatypes.JSONSlice[string] `json:"pros,omitempty"`
	Cons     datatypes.JSONSlice[string] `json:"cons,omitempty"`
	HowToUse string                      `json:"howToUse,omitempty"`

	// Premium content
	Slides   datatypes.JSONSlice[Slide]           `json:"slides,omitempty"`
	Tutorial datatypes.JSONSlice[TutorialSection] `json:"tutorial,omitempty"`
	Course   *datatypes.JSONType[Course]          `json:"course,omitempty"`
}

// Slide is one deck entry of the generated presentation.
type Slide struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// TutorialSection is one step of the generated visual mini-course.
type TutorialSection struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}
