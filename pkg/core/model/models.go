package model

import "strings"

// Gender is the normalized M/F marker carried on manifest rows. Room runs
// must never mix the two.
type Gender string

const (
	Male   Gender = "M"
	Female Gender = "F"
)

func (g Gender) IsValid() bool {
	return g == Male || g == Female
}

// NormalizeGender maps free-text gender values from the booking API onto
// the sheet's M/F markers. Unrecognized input yields the empty Gender.
func NormalizeGender(raw string) Gender {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MALE", "М", "МУЖ", "МУЖСКОЙ":
		return Male
	case "F", "FEMALE", "Ж", "ЖЕН", "ЖЕНСКИЙ":
		return Female
	}
	return ""
}

// PlacementMode controls how a co-traveling group is split across rooms.
type PlacementMode string

const (
	// ModeFamily keeps the group together regardless of gender.
	ModeFamily PlacementMode = "family"
	// ModeSeparate splits the group by gender and places each half
	// independently.
	ModeSeparate PlacementMode = "separate"
)

func (m PlacementMode) IsValid() bool {
	return m == ModeFamily || m == ModeSeparate
}

// Guest is one traveler in a booking request. Constructed by the caller,
// consumed once by the allocator, never mutated by it.
type Guest struct {
	Surname        string
	FirstName      string
	Gender         Gender
	DateOfBirth    string
	DocumentNumber string
	DocumentExpiry string
	NationalID     string
	Phone          string
	Region         string
	IsInfant       bool
	IsChild        bool
}

// IsDependent reports whether the guest rides on a parent's room rather
// than consuming independent capacity.
func (g Guest) IsDependent() bool {
	return g.IsInfant || g.IsChild
}

// Booking is one allocation request against a package manifest.
type Booking struct {
	ID          string
	PackageName string
	RoomLabel   string // free text, normalized by the room taxonomy
	Mode        PlacementMode
	Guests      []Guest
	Manager     string
	Comment     string
	Source      string
	Price       string
	AmountPaid  string
	Train       string
	Meal        string
}

// RegularGuests returns the non-dependent guests in input order.
func (b Booking) RegularGuests() []Guest {
	var out []Guest
	for _, g := range b.Guests {
		if !g.IsDependent() {
			out = append(out, g)
		}
	}
	return out
}
