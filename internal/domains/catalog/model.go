package catalog

import "time"

// Status là trạng thái publish của series / episode
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Series là entity của bảng series
type Series struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Poster      string    `json:"poster"`
	Banner      string    `json:"banner"`
	Genre       string    `json:"genre"`
	Status      Status    `json:"status"`
	CreatedBy   int64     `json:"createdBy"`
	UpdatedBy   int64     `json:"updatedBy"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *Series) Clone() *Series {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// Episode là entity của bảng episodes
type Episode struct {
	ID        int64     `json:"id"`
	SeriesID  int64     `json:"seriesId"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	VideoURL  string    `json:"videoUrl"`
	Status    Status    `json:"status"`
	CreatedBy int64     `json:"createdBy"`
	UpdatedBy int64     `json:"updatedBy"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Episode) Clone() *Episode {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// StatusChange carries everything a status update stamps on a row
type StatusChange struct {
	Status          Status
	UpdatedBy       int64
	At              time.Time
	ExpectedVersion *int // nil means last-writer-wins
}

// NextUpdatedAt keeps updated_at strictly increasing even when the clock
// does not move between two writes.
func NextUpdatedAt(previous, at time.Time) time.Time {
	if at.After(previous) {
		return at
	}
	return previous.Add(time.Microsecond)
}
