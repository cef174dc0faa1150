package models

// ApplicationStatus tracks the lifecycle of a housing application.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "Pending"
	ApplicationStatusAllocated ApplicationStatus = "Allocated"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
	ApplicationStatusArchived  ApplicationStatus = "Archived"
)

// Application is a student's request for housing.
//
// Invariant: Status == Allocated iff AllocatedRoomID is set and references a
// room whose occupants include this student. AllocatedRoomID always carries
// the room's unique id, never its display number.
type Application struct {
	ID                    string            `db:"id" json:"id"`
	StudentID             string            `db:"student_id" json:"studentId"`
	Student               string            `db:"student" json:"student"`
	Email                 string            `db:"email" json:"email"`
	Gender                Gender            `db:"gender" json:"gender"`
	PreferredBlock        string            `db:"preferred_block" json:"preferredBlock"`
	RoomType              string            `db:"room_type" json:"roomType"`
	PreferredFloor        string            `db:"preferred_floor" json:"preferredFloor,omitempty"`
	HasRoommatePreference bool              `db:"has_roommate_preference" json:"hasRoommatePreference,omitempty"`
	RoommateUSN           string            `db:"roommate_usn" json:"roommateUSN,omitempty"`
	EmergencyContactPhone string            `db:"emergency_contact_phone" json:"emergencyContactPhone,omitempty"`
	AllocatedRoomID       string            `db:"allocated_room_id" json:"allocatedRoomId,omitempty"`
	Date                  string            `db:"date" json:"date"`
	Status                ApplicationStatus `db:"status" json:"status"`
}

// EffectiveGender applies the legacy default when an application carries no
// gender.
func (a *Application) EffectiveGender() Gender {
	if a.Gender == "" {
		return GenderMale
	}
	return a.Gender
}
