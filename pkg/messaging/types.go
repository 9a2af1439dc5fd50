package messaging

type ChangeTopic string

const (
	// storefront events published by the tracking client
	TrackingTopic ChangeTopic = "tracking"
	// published by the listings backend when filter options change
	VocabularyChanged ChangeTopic = "vocabulary_changed"
)

// VocabularyChange is the body of a VocabularyChanged message.
type VocabularyChange struct {
	Categories []string `json:"categories,omitempty"`
}
