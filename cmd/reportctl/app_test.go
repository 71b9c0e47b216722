package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/pkg/auth"
)

var fixturePath = filepath.Join("..", "..", "internal", "app", "services", "testdata", "campus.yaml")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	argv := append([]string{"reportctl", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func TestCoursesFromFixture(t *testing.T) {
	out, err := run(t, "--fixture", fixturePath, "courses")
	require.NoError(t, err)

	var rows []dto.CourseEngagementResponse
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "CS101", rows[0].CourseID)
	assert.Equal(t, 28, rows[0].EngagementScore)
}

func TestContributorsFromFixture(t *testing.T) {
	out, err := run(t, "--fixture", fixturePath, "contributors", "--limit", "2")
	require.NoError(t, err)

	var rows []dto.ContributorResponse
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].UserID)
	assert.Equal(t, int64(3), rows[1].UserID)
}

func TestContributorsRejectsUnknownPreset(t *testing.T) {
	_, err := run(t, "--fixture", fixturePath, "contributors", "--weights", "loudest")
	assert.Error(t, err)
}

func TestUserStatsFromFixture(t *testing.T) {
	out, err := run(t, "--fixture", fixturePath, "user-stats", "--user", "2")
	require.NoError(t, err)

	var stats dto.UserStatsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, int64(2), stats.UserID)
	assert.Equal(t, 25, stats.Score)
}

func TestMigrateNeedsDatabase(t *testing.T) {
	_, err := run(t, "--fixture", fixturePath, "migrate")
	assert.ErrorIs(t, err, errFixtureMode)

	_, err = run(t, "--fixture", fixturePath, "seed")
	assert.ErrorIs(t, err, errFixtureMode)
}

func TestMissingFixture(t *testing.T) {
	_, err := run(t, "--fixture", filepath.Join(t.TempDir(), "missing.yaml"), "reactions")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "reportctl-test-secret")

	out, err := run(t, "token", "--user", "7", "--email", "ops@edu.test", "--role", "instructor")
	require.NoError(t, err)

	var body struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "Bearer", body.TokenType)

	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "reportctl-test-secret", TokenIssuer: "eduverse.app"})
	claims, err := svc.ValidateAndExtractClaims(body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleInstructor, claims.Role)
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := run(t, "token", "--user", "7")
	assert.Error(t, err)
}
