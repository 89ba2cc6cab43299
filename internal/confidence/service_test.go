package confidence

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"minar/internal/confidence/mocks"
	"minar/internal/signal"
	id "minar/pkg/domain"
	"minar/pkg/platform/audit"
	"minar/pkg/requestcontext"
)

type ConfidenceServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *InMemoryStore
	signals *signal.InMemoryStore
	links   *mocks.MockAdminLinks
	seen    *mocks.MockLastSeen
	service *Service
	now     time.Time
}

func (s *ConfidenceServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = NewInMemoryStore()
	s.signals = signal.NewInMemoryStore()
	s.links = mocks.NewMockAdminLinks(s.ctrl)
	s.seen = mocks.NewMockLastSeen(s.ctrl)
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.service = NewService(
		s.store,
		s.signals,
		s.links,
		s.seen,
		nil,
		nil,
		audit.NopTrail(),
		slog.New(slog.DiscardHandler),
	)
}

func TestConfidenceServiceSuite(t *testing.T) {
	suite.Run(t, new(ConfidenceServiceSuite))
}

func (s *ConfidenceServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *ConfidenceServiceSuite) ctxAt(at time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), at)
}

// userSignal persists a USER signal for the actor and runs the processor,
// mirroring how the signal service drives confidence.
func (s *ConfidenceServiceSuite) userSignal(masjidID id.MasjidID, actorID id.ActorID) *Record {
	sig, err := signal.NewSignal(id.NewSignalID(), masjidID, &actorID, signal.TypePrayed, signal.SourceUser, "Community report", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.signals.Save(s.ctx(), sig))
	record, err := s.service.ProcessSignal(s.ctx(), sig)
	s.Require().NoError(err)
	return record
}

func (s *ConfidenceServiceSuite) adminSignal(masjidID id.MasjidID) *Record {
	sig, err := signal.NewSignal(id.NewSignalID(), masjidID, nil, signal.TypeAdminVerify, signal.SourceAdmin, "", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.signals.Save(s.ctx(), sig))
	record, err := s.service.ProcessSignal(s.ctx(), sig)
	s.Require().NoError(err)
	return record
}

// ----------------------------------------------------------------------------
// Signal processing
// ----------------------------------------------------------------------------

func (s *ConfidenceServiceSuite) TestSystemSignalCreatesRecordWithoutEscalation() {
	masjidID := id.NewMasjidID()
	sig, err := signal.NewSignal(id.NewSignalID(), masjidID, nil, signal.TypeActive, signal.SourceSystem, "", s.now)
	s.Require().NoError(err)

	record, err := s.service.ProcessSignal(s.ctx(), sig)
	s.Require().NoError(err)
	s.Equal(LevelNone, record.Level)
	s.Nil(record.DecayDate)

	// The get-or-create persisted the floor state.
	stored, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelNone, stored.Level)
}

func (s *ConfidenceServiceSuite) TestCommunityThresholdExactness() {
	masjidID := id.NewMasjidID()
	actorA := id.NewActorID()
	actorB := id.NewActorID()
	actorC := id.NewActorID()

	record := s.userSignal(masjidID, actorA)
	s.Equal(LevelNone, record.Level)

	record = s.userSignal(masjidID, actorB)
	s.Equal(LevelNone, record.Level, "two distinct actors stay below threshold")

	record = s.userSignal(masjidID, actorC)
	s.Equal(LevelCommunity, record.Level, "third distinct actor crosses the threshold")
	s.Require().NotNil(record.DecayDate)
	s.Equal(s.now.AddDate(0, 0, 365), *record.DecayDate)
}

func (s *ConfidenceServiceSuite) TestDuplicateActorNeverCrossesThreshold() {
	masjidID := id.NewMasjidID()
	actorID := id.NewActorID()

	var record *Record
	for range 5 {
		record = s.userSignal(masjidID, actorID)
	}
	s.Equal(LevelNone, record.Level, "one actor signaling five times counts once")
}

func (s *ConfidenceServiceSuite) TestCommunitySignalsNeverExceedLevelOne() {
	masjidID := id.NewMasjidID()
	for range 6 {
		s.userSignal(masjidID, id.NewActorID())
	}

	record, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelCommunity, record.Level)
}

func (s *ConfidenceServiceSuite) TestCommunityCountingIgnoresStaleSignals() {
	masjidID := id.NewMasjidID()

	// Two signals from before the window.
	stale := s.now.AddDate(0, 0, -31)
	for range 2 {
		actorID := id.NewActorID()
		sig, err := signal.NewSignal(id.NewSignalID(), masjidID, &actorID, signal.TypePrayed, signal.SourceUser, "", stale)
		s.Require().NoError(err)
		s.Require().NoError(s.signals.Save(s.ctx(), sig))
	}

	record := s.userSignal(masjidID, id.NewActorID())
	s.Equal(LevelNone, record.Level, "stale actors fall outside the trailing window")
}

func (s *ConfidenceServiceSuite) TestAdminEscalationCeiling() {
	masjidID := id.NewMasjidID()

	record := s.adminSignal(masjidID)
	s.Equal(LevelAdmin, record.Level)

	record = s.adminSignal(masjidID)
	s.Equal(LevelVerified, record.Level)

	record = s.adminSignal(masjidID)
	s.Equal(LevelVerified, record.Level, "ceiling holds at verified")
	s.Require().NotNil(record.DecayDate)
	s.Equal(s.now.AddDate(0, 0, 90), *record.DecayDate, "repeat admin signal still refreshes the clock")
}

func (s *ConfidenceServiceSuite) TestAdminSignalRefreshesDecayDateAtCeiling() {
	masjidID := id.NewMasjidID()
	s.adminSignal(masjidID)
	s.adminSignal(masjidID)

	// A later admin signal pushes the decay date forward.
	later := s.now.AddDate(0, 0, 10)
	sig, err := signal.NewSignal(id.NewSignalID(), masjidID, nil, signal.TypeAdminVerify, signal.SourceAdmin, "", later)
	s.Require().NoError(err)
	record, err := s.service.ProcessSignal(s.ctxAt(later), sig)
	s.Require().NoError(err)

	s.Equal(LevelVerified, record.Level)
	s.Require().NotNil(record.DecayDate)
	s.Equal(later.AddDate(0, 0, 90), *record.DecayDate)
}

// ----------------------------------------------------------------------------
// Scheduled decay
// ----------------------------------------------------------------------------

func (s *ConfidenceServiceSuite) TestDecayOneLevelZeroFloor() {
	masjidID := id.NewMasjidID()
	s.Require().NoError(s.store.Save(s.ctx(), NewRecord(masjidID, s.now)))

	decayed, err := s.service.DecayOne(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.False(decayed)

	record, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelNone, record.Level)
}

func (s *ConfidenceServiceSuite) TestDecayOneUnknownMasjidIsNoop() {
	decayed, err := s.service.DecayOne(s.ctx(), id.NewMasjidID())
	s.Require().NoError(err)
	s.False(decayed)
}

func (s *ConfidenceServiceSuite) TestDecayOneDropsExactlyOneLevelHoweverOverdue() {
	masjidID := id.NewMasjidID()
	record := NewRecord(masjidID, s.now.AddDate(-1, 0, 0))
	record.SetLevel(LevelVerified, s.now.AddDate(-1, 0, 0))
	s.Require().NoError(s.store.Save(s.ctx(), record))

	decayed, err := s.service.DecayOne(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.True(decayed)

	got, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelAdmin, got.Level, "a year overdue still drops a single level")
	s.Require().NotNil(got.DecayDate)
	s.Equal(s.now.AddDate(0, 0, 180), *got.DecayDate)
}

func (s *ConfidenceServiceSuite) TestDecayOneRespectsFutureDecayDate() {
	masjidID := id.NewMasjidID()
	record := NewRecord(masjidID, s.now)
	record.SetLevel(LevelAdmin, s.now)
	s.Require().NoError(s.store.Save(s.ctx(), record))

	decayed, err := s.service.DecayOne(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.False(decayed)
}

func (s *ConfidenceServiceSuite) TestDecayAllOverdueScenario() {
	masjidID := id.NewMasjidID()
	record := NewRecord(masjidID, s.now)
	record.Level = LevelVerified
	yesterday := s.now.AddDate(0, 0, -1)
	record.DecayDate = &yesterday
	s.Require().NoError(s.store.Save(s.ctx(), record))

	count, err := s.service.DecayAllOverdue(s.ctx())
	s.Require().NoError(err)
	s.Equal(1, count)

	got, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelAdmin, got.Level)
	s.Require().NotNil(got.DecayDate)
	s.Equal(s.now.AddDate(0, 0, 180), *got.DecayDate)

	// Immediate second sweep finds nothing: the fresh decay date gates it.
	count, err = s.service.DecayAllOverdue(s.ctx())
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *ConfidenceServiceSuite) TestDecayAllOverdueCountsOnlyActualDecays() {
	overdueID := id.NewMasjidID()
	overdue := NewRecord(overdueID, s.now)
	overdue.Level = LevelCommunity
	past := s.now.Add(-time.Hour)
	overdue.DecayDate = &past
	s.Require().NoError(s.store.Save(s.ctx(), overdue))

	freshID := id.NewMasjidID()
	fresh := NewRecord(freshID, s.now)
	fresh.SetLevel(LevelAdmin, s.now)
	s.Require().NoError(s.store.Save(s.ctx(), fresh))

	count, err := s.service.DecayAllOverdue(s.ctx())
	s.Require().NoError(err)
	s.Equal(1, count)

	got, err := s.store.Get(s.ctx(), overdueID)
	s.Require().NoError(err)
	s.Equal(LevelNone, got.Level)
	s.Nil(got.DecayDate, "decay to the floor clears the decay date")
}

// ----------------------------------------------------------------------------
// Admin-inactivity decay
// ----------------------------------------------------------------------------

func (s *ConfidenceServiceSuite) verifiedRecord(masjidID id.MasjidID) {
	record := NewRecord(masjidID, s.now)
	record.SetLevel(LevelVerified, s.now)
	s.Require().NoError(s.store.Save(s.ctx(), record))
}

func (s *ConfidenceServiceSuite) TestDecayInactiveAdminsForcesDown() {
	masjidID := id.NewMasjidID()
	actorID := id.NewActorID()
	s.verifiedRecord(masjidID)

	s.links.EXPECT().ListVerifiedActors(gomock.Any(), masjidID).Return([]id.ActorID{actorID}, nil)
	s.seen.EXPECT().Last(gomock.Any(), actorID).Return(s.now.AddDate(0, 0, -91), true, nil)

	count, err := s.service.DecayInactiveAdmins(s.ctx())
	s.Require().NoError(err)
	s.Equal(1, count)

	record, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelAdmin, record.Level, "forced straight to admin-confirmed, bypassing the decay gate")
	s.Require().NotNil(record.DecayDate)
	s.Equal(s.now.AddDate(0, 0, 180), *record.DecayDate)
}

func (s *ConfidenceServiceSuite) TestDecayInactiveAdminsSparesActiveAdmins() {
	masjidID := id.NewMasjidID()
	actorID := id.NewActorID()
	s.verifiedRecord(masjidID)

	s.links.EXPECT().ListVerifiedActors(gomock.Any(), masjidID).Return([]id.ActorID{actorID}, nil)
	s.seen.EXPECT().Last(gomock.Any(), actorID).Return(s.now.AddDate(0, 0, -10), true, nil)

	count, err := s.service.DecayInactiveAdmins(s.ctx())
	s.Require().NoError(err)
	s.Equal(0, count)

	record, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelVerified, record.Level)
}

func (s *ConfidenceServiceSuite) TestDecayInactiveAdminsOneActiveAdminSuffices() {
	masjidID := id.NewMasjidID()
	idle := id.NewActorID()
	active := id.NewActorID()
	s.verifiedRecord(masjidID)

	s.links.EXPECT().ListVerifiedActors(gomock.Any(), masjidID).Return([]id.ActorID{idle, active}, nil)
	s.seen.EXPECT().Last(gomock.Any(), idle).Return(s.now.AddDate(0, 0, -120), true, nil)
	s.seen.EXPECT().Last(gomock.Any(), active).Return(s.now.AddDate(0, 0, -1), true, nil)

	count, err := s.service.DecayInactiveAdmins(s.ctx())
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *ConfidenceServiceSuite) TestDecayInactiveAdminsNeverSeenCountsAsInactive() {
	masjidID := id.NewMasjidID()
	actorID := id.NewActorID()
	s.verifiedRecord(masjidID)

	s.links.EXPECT().ListVerifiedActors(gomock.Any(), masjidID).Return([]id.ActorID{actorID}, nil)
	s.seen.EXPECT().Last(gomock.Any(), actorID).Return(time.Time{}, false, nil)

	count, err := s.service.DecayInactiveAdmins(s.ctx())
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ConfidenceServiceSuite) TestDecayInactiveAdminsSkipsUnlinkedMasjids() {
	masjidID := id.NewMasjidID()
	s.verifiedRecord(masjidID)

	s.links.EXPECT().ListVerifiedActors(gomock.Any(), masjidID).Return(nil, nil)

	count, err := s.service.DecayInactiveAdmins(s.ctx())
	s.Require().NoError(err)
	s.Equal(0, count)

	record, err := s.store.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelVerified, record.Level)
}

func (s *ConfidenceServiceSuite) TestDecayInactiveAdminsIgnoresLowerLevels() {
	masjidID := id.NewMasjidID()
	record := NewRecord(masjidID, s.now)
	record.SetLevel(LevelAdmin, s.now)
	s.Require().NoError(s.store.Save(s.ctx(), record))

	count, err := s.service.DecayInactiveAdmins(s.ctx())
	s.Require().NoError(err)
	s.Equal(0, count)
}

// ----------------------------------------------------------------------------
// Approval escalation
// ----------------------------------------------------------------------------

func (s *ConfidenceServiceSuite) TestForceVerifiedBypassesIntermediateLevels() {
	for _, start := range []Level{LevelNone, LevelCommunity} {
		masjidID := id.NewMasjidID()
		if start != LevelNone {
			record := NewRecord(masjidID, s.now)
			record.SetLevel(start, s.now)
			s.Require().NoError(s.store.Save(s.ctx(), record))
		}

		record, err := s.service.ForceVerified(s.ctx(), masjidID)
		s.Require().NoError(err)
		s.Equal(LevelVerified, record.Level, "from level %d straight to verified", int(start))
		s.Require().NotNil(record.DecayDate)
		s.Equal(s.now.AddDate(0, 0, 90), *record.DecayDate)
	}
}

func (s *ConfidenceServiceSuite) TestGetReturnsImplicitFloorRecord() {
	masjidID := id.NewMasjidID()

	record, err := s.service.Get(s.ctx(), masjidID)
	s.Require().NoError(err)
	s.Equal(LevelNone, record.Level)
	s.Nil(record.DecayDate)

	// Reading never persists.
	_, err = s.store.Get(s.ctx(), masjidID)
	s.Require().Error(err)
}
