package models

import "strings"

// Gender labels used across rooms, applications and occupants.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// RoomStatus is the closed set of room states. It is derived from
// occupied/capacity/maintenance rather than stored as free text.
type RoomStatus string

const (
	RoomStatusAvailable          RoomStatus = "Available"
	RoomStatusPartiallyOccupied  RoomStatus = "Partially Occupied"
	RoomStatusOccupied           RoomStatus = "Occupied"
	RoomStatusMaintenance        RoomStatus = "Maintenance"
)

// DeriveRoomStatus computes the status from occupancy and the maintenance flag.
func DeriveRoomStatus(occupied, capacity int, maintenance bool) RoomStatus {
	switch {
	case maintenance:
		return RoomStatusMaintenance
	case occupied <= 0:
		return RoomStatusAvailable
	case occupied >= capacity:
		return RoomStatusOccupied
	default:
		return RoomStatusPartiallyOccupied
	}
}

// ParseRoomStatus normalises legacy free-text status strings into the closed
// set. Unrecognised values fall back to Available.
func ParseRoomStatus(raw string) RoomStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "partially"):
		return RoomStatusPartiallyOccupied
	case s == "maintenance":
		return RoomStatusMaintenance
	case s == "occupied":
		return RoomStatusOccupied
	default:
		return RoomStatusAvailable
	}
}

// Key returns the snake_case key used by dashboard breakdowns.
func (s RoomStatus) Key() string {
	switch s {
	case RoomStatusPartiallyOccupied:
		return "partially_occupied"
	case RoomStatusMaintenance:
		return "maintenance"
	case RoomStatusOccupied:
		return "occupied"
	default:
		return "available"
	}
}

// GenderForBlock maps housing blocks to the gender they are restricted to:
// blocks A and B are female, C through E are male.
func GenderForBlock(block string) Gender {
	switch strings.ToUpper(strings.TrimSpace(block)) {
	case "A", "B":
		return GenderFemale
	default:
		return GenderMale
	}
}

// BlocksForGender returns the blocks a given gender may be housed in.
func BlocksForGender(g Gender) []string {
	if g == GenderFemale {
		return []string{"A", "B"}
	}
	return []string{"C", "D", "E"}
}

// Occupant is a denormalized snapshot of a student attached to a room.
type Occupant struct {
	Name   string `db:"name" json:"name"`
	ID     string `db:"id" json:"id"`
	USN    string `db:"usn" json:"usn"`
	Gender Gender `db:"gender" json:"gender"`
}

// Room represents a housing unit.
//
// Invariants: 0 <= Occupied <= Capacity and Occupied == len(Occupants);
// Status is always DeriveRoomStatus(Occupied, Capacity, Maintenance).
type Room struct {
	ID          string     `db:"id" json:"id"`
	Number      string     `db:"number" json:"number"`
	Block       string     `db:"block" json:"block"`
	Floor       int        `db:"floor" json:"floor"`
	Type        string     `db:"type" json:"type"`
	Capacity    int        `db:"capacity" json:"capacity"`
	Occupied    int        `db:"occupied" json:"occupied"`
	Rent        int        `db:"rent" json:"rent"`
	Status      RoomStatus `db:"status" json:"status"`
	Maintenance bool       `db:"maintenance" json:"maintenance,omitempty"`
	Gender      Gender     `db:"gender" json:"gender"`
	Occupants   []Occupant `db:"-" json:"occupants"`
}

// Normalize repairs derivable fields after loading from storage.
func (r *Room) Normalize() {
	if r.Gender == "" {
		r.Gender = GenderForBlock(r.Block)
	}
	if !r.Maintenance && ParseRoomStatus(string(r.Status)) == RoomStatusMaintenance {
		r.Maintenance = true
	}
	r.RefreshStatus()
}

// RefreshStatus recomputes the stored status from the current occupancy.
func (r *Room) RefreshStatus() {
	r.Status = DeriveRoomStatus(r.Occupied, r.Capacity, r.Maintenance)
}

// HasSpace reports whether another occupant fits.
func (r *Room) HasSpace() bool {
	return r.Occupied < r.Capacity
}

// TypeMatches compares room types case-insensitively.
func (r *Room) TypeMatches(roomType string) bool {
	return strings.EqualFold(r.Type, roomType)
}

// AddOccupant appends the occupant and bumps the counters.
func (r *Room) AddOccupant(o Occupant) {
	r.Occupants = append(r.Occupants, o)
	r.Occupied++
	r.RefreshStatus()
}

// RemoveOccupant filters the student out and decrements occupancy, flooring
// the counter at zero. It reports whether the student was actually present,
// so a removal of an unknown student never skews the occupied count.
func (r *Room) RemoveOccupant(studentID string) bool {
	filtered := r.Occupants[:0]
	removed := false
	for _, o := range r.Occupants {
		if o.ID == studentID {
			removed = true
			continue
		}
		filtered = append(filtered, o)
	}
	if !removed {
		return false
	}
	r.Occupants = filtered
	if r.Occupied > 0 {
		r.Occupied--
	}
	r.RefreshStatus()
	return true
}

// RoommatesOf returns the occupants other than the given student.
func (r *Room) RoommatesOf(studentID string) []Occupant {
	mates := make([]Occupant, 0, len(r.Occupants))
	for _, o := range r.Occupants {
		if o.ID != studentID {
			mates = append(mates, o)
		}
	}
	return mates
}
