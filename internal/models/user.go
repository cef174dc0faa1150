package models

// UserRole represents the available roles.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// AllocationStateNotAllocated is the student status written by the semester
// reset.
const AllocationStateNotAllocated = "Not Allocated"

// RoomDetails is the denormalized snapshot of a student's current allocation.
type RoomDetails struct {
	RoomNumber   string     `json:"roomNumber"`
	Building     string     `json:"building"`
	Floor        int        `json:"floor"`
	RoomType     string     `json:"roomType"`
	RentPerMonth int        `json:"rentPerMonth"`
	Roommates    []Occupant `json:"roommates"`
}

// User is a registered account, student or admin.
type User struct {
	ID           string       `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	Role         UserRole     `db:"role" json:"role"`
	USN          string       `db:"usn" json:"usn,omitempty"`
	AdminID      string       `db:"admin_id" json:"adminId,omitempty"`
	Gender       Gender       `db:"gender" json:"gender,omitempty"`
	Status       string       `db:"status" json:"status,omitempty"`
	RoomDetails  *RoomDetails `db:"-" json:"roomDetails,omitempty"`
}
