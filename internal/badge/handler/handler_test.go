package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minar/internal/badge"
	"minar/internal/confidence"
	"minar/internal/masjid"
	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
	"minar/pkg/platform/audit"
	"minar/pkg/requestcontext"
	"minar/pkg/testutil"
)

type stubDirectory struct {
	masjid *masjid.Masjid
}

func (d *stubDirectory) Get(_ context.Context, masjidID id.MasjidID) (*masjid.Masjid, error) {
	if d.masjid == nil || d.masjid.ID != masjidID {
		return nil, dErrors.New(dErrors.CodeNotFound, "masjid not found")
	}
	return d.masjid, nil
}

type stubConfidence struct {
	level confidence.Level
	now   time.Time
}

func (c *stubConfidence) Get(_ context.Context, masjidID id.MasjidID) (*confidence.Record, error) {
	record := confidence.NewRecord(masjidID, c.now)
	record.SetLevel(c.level, c.now)
	return record, nil
}

func newTestRouter(t *testing.T) (chi.Router, *badge.Service, id.MasjidID, time.Time) {
	t.Helper()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	masjidID := id.NewMasjidID()
	service := badge.NewService(
		badge.NewInMemoryStore(),
		&stubDirectory{masjid: &masjid.Masjid{ID: masjidID, Name: "Central Masjid", IsActive: true}},
		&stubConfidence{level: confidence.LevelVerified, now: now},
		nil,
		audit.NopTrail(),
		slog.New(slog.DiscardHandler),
	)

	r := chi.NewRouter()
	New(service, slog.New(slog.DiscardHandler)).RegisterPublic(r)
	return r, service, masjidID, now
}

func TestVerifyUnknownTokenReturns404WithInvalidBody(t *testing.T) {
	router, _, _, now := newTestRouter(t)

	req := testutil.NewRequest(t, http.MethodGet, "/verify/no-such-token")
	req = testutil.WithRequestTime(req, now)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	testutil.AssertJSONContains(t, rr, "valid", false)
}

func TestVerifyValidBadge(t *testing.T) {
	router, service, masjidID, now := newTestRouter(t)

	ctx := requestcontext.WithTime(context.Background(), now)
	b, err := service.Issue(ctx, masjidID, id.NewActorID(), nil)
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodGet, "/verify/"+b.Token)
	req = testutil.WithRequestTime(req, now)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, true, (*resp)["valid"])
	assert.Equal(t, "Central Masjid", (*resp)["masjid_name"])
	assert.Equal(t, masjidID.String(), (*resp)["masjid_id"])
}

func TestVerifyRevokedBadgeAnswersInvalid(t *testing.T) {
	router, service, masjidID, now := newTestRouter(t)

	ctx := requestcontext.WithTime(context.Background(), now)
	b, err := service.Issue(ctx, masjidID, id.NewActorID(), nil)
	require.NoError(t, err)
	_, err = service.Revoke(ctx, b.ID)
	require.NoError(t, err)

	req := testutil.NewRequest(t, http.MethodGet, "/verify/"+b.Token)
	req = testutil.WithRequestTime(req, now)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "valid", false)
}
