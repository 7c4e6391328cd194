package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultArticleIcon     = "article"
	DefaultArticleColor    = "#6C63FF"
	DefaultArticleCategory = "general"
)

const (
	URLMaxLen        = 512
	ShortFieldMaxLen = 64
	ColorMaxLen      = 16
)

type Article struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Content     string    `gorm:"type:text" json:"content"`
	URL         string    `gorm:"size:512" json:"url"`
	IconName    string    `gorm:"size:64" json:"iconName"`
	Color       string    `gorm:"size:16" json:"color"`
	Category    string    `gorm:"size:64" json:"category"`
	IsPublished bool      `gorm:"not null;index" json:"isPublished"`
	CreatedBy   uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

type Job struct {
	ID              uint64                      `gorm:"primaryKey" json:"id"`
	Title           string                      `gorm:"size:200;not null" json:"title"`
	Description     string                      `gorm:"type:text;not null" json:"description"`
	Difficulty      Difficulty                  `gorm:"size:16;not null" json:"difficulty"`
	PayRange        string                      `gorm:"size:64;not null" json:"payRange"`
	TimeCommitment  string                      `gorm:"size:64;not null" json:"timeCommitment"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	FullDescription string                      `gorm:"type:text" json:"fullDescription"`
	Requirements    datatypes.JSONSlice[string] `json:"requirements"`
	HowToStart      string                      `gorm:"type:text" json:"howToStart"`
	IsPublished     bool                        `gorm:"not null;index" json:"isPublished"`
	CreatedBy       uint64                      `gorm:"not null" json:"createdBy"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}
