package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
)

func newTestService() *Service {
	return NewService("test-signing-key", "minar", "minar-api")
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	actorID := id.NewActorID()

	token, err := svc.GenerateAccessToken(actorID, "masjid_admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, actorID.String(), claims.ActorID)
	assert.Equal(t, "masjid_admin", claims.Role)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken(id.NewActorID(), "user", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsForeignKey(t *testing.T) {
	token, err := newTestService().GenerateAccessToken(id.NewActorID(), "user", time.Hour)
	require.NoError(t, err)

	other := NewService("different-key", "minar", "minar-api")
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
