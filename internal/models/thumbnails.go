package models

import (
	"google.golang.org/api/youtube/v3"
)

type Thumbnail = youtube.Thumbnail

type Thumbnails = youtube.ThumbnailDetails

// BestThumbnail picks the highest resolution thumbnail available,
// in order maxres, standard, high, medium, default.
// Returns nil if none available.
func BestThumbnail(t *Thumbnails) *Thumbnail {
	if t == nil {
		return nil
	}

	for _, thumb := range []*Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb
		}
	}

	return nil
}
