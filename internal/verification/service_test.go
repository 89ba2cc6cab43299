package verification

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"minar/internal/adminlink"
	"minar/internal/confidence"
	"minar/internal/signal"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/requestcontext"
)

// The suite wires the real admin link and confidence services so the
// approval hook is exercised end to end, not against stubs.
type VerificationServiceSuite struct {
	suite.Suite
	store       *InMemoryStore
	links       *adminlink.Service
	confStore   *confidence.InMemoryStore
	confService *confidence.Service
	service     *Service
	masjidID    id.MasjidID
	link        *adminlink.Link
	now         time.Time
}

func (s *VerificationServiceSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.masjidID = id.NewMasjidID()

	s.store = NewInMemoryStore()
	s.links = adminlink.NewService(adminlink.NewInMemoryStore(), audit.NopTrail(), logger)
	s.confStore = confidence.NewInMemoryStore()
	s.confService = confidence.NewService(
		s.confStore, signal.NewInMemoryStore(), nil, nil, nil, nil, audit.NopTrail(), logger)
	s.service = NewService(s.store, s.links, s.confService, audit.NopTrail(), logger)

	link, err := s.links.Create(s.ctx(), id.NewActorID(), s.masjidID)
	s.Require().NoError(err)
	s.link = link
}

func TestVerificationServiceSuite(t *testing.T) {
	suite.Run(t, new(VerificationServiceSuite))
}

func (s *VerificationServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *VerificationServiceSuite) submit() *Document {
	doc, err := s.service.Submit(s.ctx(), s.link.ID, "utility bill in the masjid's name")
	s.Require().NoError(err)
	return doc
}

func (s *VerificationServiceSuite) TestSubmitCreatesPendingDocument() {
	doc := s.submit()

	s.False(doc.Reviewed)
	s.False(doc.Approved)
	s.True(doc.SubmittedAt.Equal(s.now))

	pending, err := s.service.ListPending(s.ctx())
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func (s *VerificationServiceSuite) TestSubmitUnknownLinkNotFound() {
	_, err := s.service.Submit(s.ctx(), id.NewAdminLinkID(), "some document")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *VerificationServiceSuite) TestSubmitRequiresDescription() {
	_, err := s.service.Submit(s.ctx(), s.link.ID, "   ")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *VerificationServiceSuite) TestApprovalVerifiesLinkAndEscalatesConfidence() {
	doc := s.submit()

	reviewed, err := s.service.Review(s.ctx(), doc.ID, true, "matches registry entry")
	s.Require().NoError(err)
	s.True(reviewed.Reviewed)
	s.True(reviewed.Approved)
	s.Require().NotNil(reviewed.ReviewedAt)

	link, err := s.links.Get(s.ctx(), s.link.ID)
	s.Require().NoError(err)
	s.True(link.VerifiedIdentity)

	// Approval bypasses the escalation ladder: the masjid had no confidence
	// history at all and lands straight on verified.
	record, err := s.confService.Get(s.ctx(), s.masjidID)
	s.Require().NoError(err)
	s.Equal(confidence.LevelVerified, record.Level)
	s.Require().NotNil(record.DecayDate)
	s.True(record.DecayDate.Equal(s.now.AddDate(0, 0, 90)))
}

func (s *VerificationServiceSuite) TestRejectionLeavesLinkAndConfidenceUntouched() {
	doc := s.submit()

	reviewed, err := s.service.Review(s.ctx(), doc.ID, false, "document is illegible")
	s.Require().NoError(err)
	s.True(reviewed.Reviewed)
	s.False(reviewed.Approved)
	s.Equal("document is illegible", reviewed.ReviewNotes)

	link, err := s.links.Get(s.ctx(), s.link.ID)
	s.Require().NoError(err)
	s.False(link.VerifiedIdentity)

	record, err := s.confService.Get(s.ctx(), s.masjidID)
	s.Require().NoError(err)
	s.Equal(confidence.LevelNone, record.Level)
}

func (s *VerificationServiceSuite) TestReviewIsOneShot() {
	doc := s.submit()

	_, err := s.service.Review(s.ctx(), doc.ID, false, "wrong masjid")
	s.Require().NoError(err)

	// A second decision, even a different one, conflicts. The approval hook
	// can never fire for a document that has already been decided.
	_, err = s.service.Review(s.ctx(), doc.ID, true, "")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	link, err := s.links.Get(s.ctx(), s.link.ID)
	s.Require().NoError(err)
	s.False(link.VerifiedIdentity)
}

func (s *VerificationServiceSuite) TestApproveTwiceConflicts() {
	doc := s.submit()

	_, err := s.service.Review(s.ctx(), doc.ID, true, "")
	s.Require().NoError(err)

	_, err = s.service.Review(s.ctx(), doc.ID, true, "")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *VerificationServiceSuite) TestReviewUnknownDocumentNotFound() {
	_, err := s.service.Review(s.ctx(), id.NewDocumentID(), true, "")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *VerificationServiceSuite) TestPendingQueueIsOldestFirst() {
	first := s.submit()

	laterCtx := requestcontext.WithTime(context.Background(), s.now.Add(time.Hour))
	second, err := s.service.Submit(laterCtx, s.link.ID, "lease agreement")
	s.Require().NoError(err)

	pending, err := s.service.ListPending(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(first.ID, pending[0].ID)
	s.Equal(second.ID, pending[1].ID)

	_, err = s.service.Review(s.ctx(), first.ID, false, "")
	s.Require().NoError(err)

	pending, err = s.service.ListPending(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(second.ID, pending[0].ID)
}
