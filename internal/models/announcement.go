package models

// Announcement is a short notice shown on the student dashboard.
type Announcement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}
