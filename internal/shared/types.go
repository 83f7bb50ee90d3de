package shared

// Queue names
const (
	QueueArtwork      = "artwork"
	QueueNotification = "notification"
	QueueDefault      = "default"
)

// Task types
const (
	TypeProcessArtwork     = "artwork:process"
	TypeCleanupReadNotices = "notification:cleanup_read"
)

// ArtworkPayload identifies an uploaded original waiting for variants
type ArtworkPayload struct {
	ArtworkID   string `json:"artwork_id"`
	Kind        string `json:"kind"`
	OriginalKey string `json:"original_key"`
}

// CleanupReadPayload optionally overrides the configured retention
type CleanupReadPayload struct {
	RetentionHours int `json:"retention_hours"`
}
