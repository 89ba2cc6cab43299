package masjid

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
)

type recordingPurger struct {
	purged []id.MasjidID
}

func (p *recordingPurger) PurgeMasjid(_ context.Context, masjidID id.MasjidID) error {
	p.purged = append(p.purged, masjidID)
	return nil
}

type MasjidServiceSuite struct {
	suite.Suite
	service *Service
	purger  *recordingPurger
}

func (s *MasjidServiceSuite) SetupTest() {
	s.purger = &recordingPurger{}
	s.service = NewService(
		NewInMemoryStore(),
		nil,
		audit.NopTrail(),
		slog.New(slog.DiscardHandler),
		s.purger,
	)
}

func TestMasjidServiceSuite(t *testing.T) {
	suite.Run(t, new(MasjidServiceSuite))
}

func (s *MasjidServiceSuite) validLocation() Location {
	return Location{Latitude: 51.5194, Longitude: -0.1243, City: "London", CountryCode: "gb"}
}

func (s *MasjidServiceSuite) TestCreateDefaultsActive() {
	m, err := s.service.Create(context.Background(), "Central Masjid", "", s.validLocation())
	s.Require().NoError(err)
	s.True(m.IsActive)
	s.Equal("GB", m.Location.CountryCode, "country code normalized to uppercase")
}

func (s *MasjidServiceSuite) TestCreateRejectsEmptyName() {
	_, err := s.service.Create(context.Background(), "   ", "", s.validLocation())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *MasjidServiceSuite) TestCreateRejectsBadCoordinates() {
	loc := s.validLocation()
	loc.Latitude = 123
	_, err := s.service.Create(context.Background(), "Central Masjid", "", loc)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *MasjidServiceSuite) TestUpdateChangesFields() {
	m, err := s.service.Create(context.Background(), "Central Masjid", "", s.validLocation())
	s.Require().NoError(err)

	updated, err := s.service.Update(context.Background(), m.ID, "East Masjid", "renamed", s.validLocation())
	s.Require().NoError(err)
	s.Equal("East Masjid", updated.Name)
	s.Equal("renamed", updated.Description)
}

func (s *MasjidServiceSuite) TestDeactivateIsOneShot() {
	m, err := s.service.Create(context.Background(), "Central Masjid", "", s.validLocation())
	s.Require().NoError(err)

	deactivated, err := s.service.Deactivate(context.Background(), m.ID)
	s.Require().NoError(err)
	s.False(deactivated.IsActive)

	_, err = s.service.Deactivate(context.Background(), m.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *MasjidServiceSuite) TestDeleteCascadesThroughPurgers() {
	m, err := s.service.Create(context.Background(), "Central Masjid", "", s.validLocation())
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(context.Background(), m.ID))
	s.Equal([]id.MasjidID{m.ID}, s.purger.purged)

	_, err = s.service.Get(context.Background(), m.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *MasjidServiceSuite) TestDeleteUnknownMasjid() {
	err := s.service.Delete(context.Background(), id.NewMasjidID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Empty(s.purger.purged, "purgers must not run for unknown masjids")
}

func (s *MasjidServiceSuite) TestListFilters() {
	_, err := s.service.Create(context.Background(), "Central Masjid", "", s.validLocation())
	s.Require().NoError(err)

	loc := s.validLocation()
	loc.CountryCode = "TR"
	other, err := s.service.Create(context.Background(), "Blue Mosque", "", loc)
	s.Require().NoError(err)
	_, err = s.service.Deactivate(context.Background(), other.ID)
	s.Require().NoError(err)

	active, err := s.service.List(context.Background(), Filter{ActiveOnly: true})
	s.Require().NoError(err)
	s.Len(active, 1)
	s.Equal("Central Masjid", active[0].Name)

	all, err := s.service.List(context.Background(), Filter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	turkish, err := s.service.List(context.Background(), Filter{CountryCode: "tr"})
	s.Require().NoError(err)
	s.Len(turkish, 1)
	s.Equal("Blue Mosque", turkish[0].Name)
}
