package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/config"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "hopewell-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	adminID := uuid.New()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		AdminID: adminID,
		Email:   "ops@hopewell.org",
		Role:    enums.AdminRoleFinance,
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, enums.AdminRoleFinance, claims.Role)
	assert.Equal(t, "hopewell-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "jti should be assigned")
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		AdminID: uuid.New(),
		Email:   "ops@hopewell.org",
		Role:    enums.AdminRoleSuper,
	})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, signed)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{
		AdminID: uuid.New(),
		Email:   "ops@hopewell.org",
		Role:    enums.AdminRoleContent,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	assert.Error(t, err)
}

func TestParseAccessTokenHonorsTimeFunc(t *testing.T) {
	cfg := testJWTConfig()
	issuedAt := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	signed, err := MintAccessToken(cfg, issuedAt, AccessTokenPayload{
		AdminID: uuid.New(),
		Email:   "ops@hopewell.org",
		Role:    enums.AdminRoleFinance,
	})
	require.NoError(t, err)

	// rejected against the wall clock once the TTL has passed
	_, err = ParseAccessToken(cfg, signed)
	assert.Error(t, err)

	claims, err := ParseAccessToken(cfg, signed,
		jwt.WithTimeFunc(func() time.Time { return issuedAt }))
	require.NoError(t, err)
	assert.Equal(t, "hopewell-test", claims.Issuer)
}

func TestMintAccessTokenRejectsInvalidRole(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		AdminID: uuid.New(),
		Role:    enums.AdminRole("janitor"),
	})
	assert.Error(t, err)
}
