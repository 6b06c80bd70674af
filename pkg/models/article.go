package models

import "time"

// Manifest is the metadata an article folder declares about itself.
type Manifest struct {
	Title   string `toml:"title" yaml:"title"`
	Date    string `toml:"date" yaml:"date"`
	Picture string `toml:"picture" yaml:"picture"`
	Page    string `toml:"page" yaml:"page"`
}

// Article is one entry of the articles listing.
type Article struct {
	Title         string `json:"title"`
	Date          string `json:"date"` // Raw manifest value, YYYY-DD-MM
	FormattedDate string `json:"formatted_date"`
	PictureURL    string `json:"picture_url"`
	Category      string `json:"category"`
	Link          string `json:"link"`

	Published time.Time `json:"-"` // Parsed Date, used for ordering
}
