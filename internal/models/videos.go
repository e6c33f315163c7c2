package models

import (
	"encoding/json"
	"time"
)

// VideoMetadata is the enriched description of a YouTube video
type VideoMetadata struct {
	VideoID       string     `json:"video_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Duration      *int       `json:"duration"` // seconds
	Thumbnail     string     `json:"thumbnail,omitempty"`
	PrivacyStatus string     `json:"privacy_status,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ChannelTitle  string     `json:"channel_title,omitempty"`
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (vm VideoMetadata) MarshalBinary() (data []byte, err error) {
	return json.Marshal(vm)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (vm *VideoMetadata) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, vm)
}

// LessonVideo binds a lesson to a YouTube video
type LessonVideo struct {
	LessonID     int64      `json:"lesson_id"`
	VideoID      string     `json:"video_id"`
	Reference    string     `json:"reference"`
	Slug         string     `json:"slug,omitempty"`
	Title        string     `json:"title"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	Duration     *int       `json:"duration,omitempty"`
	Enriched     bool       `json:"enriched"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ChannelTitle string     `json:"channel_title,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
