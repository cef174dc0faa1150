package models

// Maintenance request statuses.
const (
	MaintenanceStatusPending  = "Pending"
	MaintenanceStatusResolved = "Resolved"
)

// MaintenanceRequest is a reported facility issue, optionally with a photo.
type MaintenanceRequest struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Location    string `json:"location"`
	FileURL     string `json:"fileUrl,omitempty"`
	Timestamp   int64  `json:"timestamp"`
	ResolvedAt  int64  `json:"resolvedAt,omitempty"`
}
