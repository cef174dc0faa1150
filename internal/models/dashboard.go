package models

// DashboardStats aggregates headline numbers for the admin dashboard. Room
// totals are expressed in beds, not rooms, matching the original dashboard.
type DashboardStats struct {
	TotalRooms           int            `json:"totalRooms"`
	OccupiedRooms        int            `json:"occupiedRooms"`
	AvailableRooms       int            `json:"availableRooms"`
	PendingApplications  int            `json:"pendingApplications"`
	MaintenanceRequests  int            `json:"maintenanceRequests"`
	Revenue              int            `json:"revenue"`
	OccupancyBreakdown   map[string]int `json:"occupancyBreakdown"`
	MaintenanceBreakdown map[string]int `json:"maintenanceBreakdown"`
}

// OccupancyPoint is one month of the simulated occupancy trend.
type OccupancyPoint struct {
	Month    string `json:"month"`
	Occupied int    `json:"occupied"`
	Total    int    `json:"total"`
}

// Activity is a normalized entry in the recent-activity feed.
type Activity struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
}

// StudentRoomDetails is the /api/student/me payload for an allocated student.
type StudentRoomDetails struct {
	RoomNumber     string     `json:"roomNumber"`
	RoomType       string     `json:"roomType"`
	Building       string     `json:"building"`
	Floor          int        `json:"floor"`
	Facilities     []string   `json:"facilities"`
	RentPerMonth   int        `json:"rentPerMonth"`
	AllocationDate string     `json:"allocationDate"`
	Roommates      []Roommate `json:"roommates"`
}

// Roommate describes a co-occupant in the student view.
type Roommate struct {
	Name    string `json:"name"`
	USN     string `json:"rollNumber"`
	Contact string `json:"contact"`
}

// StudentStatus is the envelope returned by /api/student/me.
type StudentStatus struct {
	Status          string              `json:"status"`
	ApplicationDate string              `json:"applicationDate,omitempty"`
	RoomDetails     *StudentRoomDetails `json:"roomDetails,omitempty"`
}
