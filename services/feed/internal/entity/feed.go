package entity

import "creatitube/pkg/models"

// TopicSuggestion is the answer to a topic request. Fallback is set when the
// model could not be used and Note says why.
type TopicSuggestion struct {
	Topics   []string `json:"topics"`
	Fallback bool     `json:"fallback"`
	Note     string   `json:"note,omitempty"`
}

type Highlights struct {
	Text   string `json:"text"`
	Cached bool   `json:"cached"`
}

// Feed holds the videos matching Topics. Images are not filtered.
type Feed struct {
	Topics []string             `json:"topics"`
	Videos []models.ContentItem `json:"videos"`
	Images []models.ContentItem `json:"images"`
}

type SearchResult struct {
	Query string `json:"query"`
	Feed
	Fallback bool   `json:"fallback"`
	Note     string `json:"note,omitempty"`
}
