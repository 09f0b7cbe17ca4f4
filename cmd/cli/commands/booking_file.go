package commands

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/adilbekov/umrah-rooming/pkg/core/model"
)

// bookingFile is the YAML shape of a booking request passed via
// --from-file. It mirrors what managers fill in by hand, so gender and
// room type stay free text and get normalized on load.
type bookingFile struct {
	Package string `yaml:"package"`
	Room    string `yaml:"room"`
	Mode    string `yaml:"mode"`
	Manager string `yaml:"manager,omitempty"`
	Comment string `yaml:"comment,omitempty"`
	Source  string `yaml:"source,omitempty"`
	Price   string `yaml:"price,omitempty"`
	Paid    string `yaml:"paid,omitempty"`
	Train   string `yaml:"train,omitempty"`
	Meal    string `yaml:"meal,omitempty"`
	Guests  []struct {
		Surname   string `yaml:"surname"`
		FirstName string `yaml:"firstName"`
		Gender    string `yaml:"gender,omitempty"`
		BirthDate string `yaml:"birthDate,omitempty"`
		Document  string `yaml:"document,omitempty"`
		Expiry    string `yaml:"expiry,omitempty"`
		IIN       string `yaml:"iin,omitempty"`
		Phone     string `yaml:"phone,omitempty"`
		Region    string `yaml:"region,omitempty"`
		Infant    bool   `yaml:"infant,omitempty"`
		Child     bool   `yaml:"child,omitempty"`
	} `yaml:"guests"`
}

// loadBookingFile reads a booking request from a YAML file and converts it
// into the model the services consume.
func loadBookingFile(path string) (*model.Booking, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read booking file: %w", err)
	}

	var bf bookingFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse booking file: %w", err)
	}

	if bf.Package == "" {
		return nil, fmt.Errorf("booking file is missing the package name")
	}
	if len(bf.Guests) == 0 {
		return nil, fmt.Errorf("booking file has no guests")
	}

	mode := model.PlacementMode(bf.Mode)
	if bf.Mode == "" {
		mode = model.ModeSeparate
	}

	booking := &model.Booking{
		ID:          uuid.New().String(),
		PackageName: bf.Package,
		RoomLabel:   bf.Room,
		Mode:        mode,
		Manager:     bf.Manager,
		Comment:     bf.Comment,
		Source:      bf.Source,
		Price:       bf.Price,
		AmountPaid:  bf.Paid,
		Train:       bf.Train,
		Meal:        bf.Meal,
	}

	for i, g := range bf.Guests {
		gender := model.NormalizeGender(g.Gender)
		if g.Gender != "" && !gender.IsValid() {
			return nil, fmt.Errorf("guest %d has unrecognized gender %q", i+1, g.Gender)
		}
		booking.Guests = append(booking.Guests, model.Guest{
			Surname:        g.Surname,
			FirstName:      g.FirstName,
			Gender:         gender,
			DateOfBirth:    g.BirthDate,
			DocumentNumber: g.Document,
			DocumentExpiry: g.Expiry,
			NationalID:     g.IIN,
			Phone:          g.Phone,
			Region:         g.Region,
			IsInfant:       g.Infant,
			IsChild:        g.Child,
		})
	}

	return booking, nil
}
