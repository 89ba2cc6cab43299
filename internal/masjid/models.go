package masjid

import (
	"strings"
	"time"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
)

// Location embeds the geographic position and administrative area of a
// masjid. Country codes are ISO 3166-1 alpha-2, stored uppercase.
type Location struct {
	Latitude    float64
	Longitude   float64
	City        string
	CountryCode string
	Region      string
}

func (l Location) validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return dErrors.New(dErrors.CodeInvalidInput, "latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return dErrors.New(dErrors.CodeInvalidInput, "longitude must be between -180 and 180")
	}
	if l.CountryCode != "" && len(l.CountryCode) != 2 {
		return dErrors.New(dErrors.CodeInvalidInput, "country code must be two letters")
	}
	return nil
}

// Masjid is a directory entry. IsActive is the soft switch the badge validity
// engine consults; deletion is a hard cascade.
type Masjid struct {
	ID          id.MasjidID
	Name        string
	Description string
	Location    Location
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewMasjid(masjidID id.MasjidID, name, description string, location Location, now time.Time) (*Masjid, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "masjid name is required")
	}
	location.CountryCode = strings.ToUpper(strings.TrimSpace(location.CountryCode))
	if err := location.validate(); err != nil {
		return nil, err
	}

	return &Masjid{
		ID:          masjidID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Location:    location,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ApplyUpdate mutates the editable fields after validating them.
func (m *Masjid) ApplyUpdate(name, description string, location Location, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "masjid name is required")
	}
	location.CountryCode = strings.ToUpper(strings.TrimSpace(location.CountryCode))
	if err := location.validate(); err != nil {
		return err
	}

	m.Name = name
	m.Description = strings.TrimSpace(description)
	m.Location = location
	m.UpdatedAt = now
	return nil
}

// Filter narrows directory listings.
type Filter struct {
	NameQuery   string
	CountryCode string
	ActiveOnly  bool
}
