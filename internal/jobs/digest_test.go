package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/app/models"
	"github.com/yigit/eduverse/internal/app/repositories/inmem"
	"github.com/yigit/eduverse/internal/app/services"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
	"github.com/yigit/eduverse/internal/seed"
)

type downStore struct {
	analytics.FactSource
}

func (downStore) ListUsers(context.Context, analytics.UserFilter) ([]models.User, error) {
	return nil, errors.New("connection refused")
}

func newDigest(source analytics.FactSource, size int) *Digest {
	svc := services.NewReportService(source, services.ReportOptions{DefaultLimit: 10, MaxLimit: 100}, zerolog.Nop())
	return NewDigest(svc, size, zerolog.Nop())
}

func TestDigest_Run(t *testing.T) {
	d := newDigest(inmem.New(seed.Demo()), 2)

	summary, err := d.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Courses, 2)
	assert.Equal(t, "CS101", summary.Courses[0].CourseID)
	assert.Equal(t, 13, summary.Courses[0].EngagementScore)
	assert.Equal(t, "CS301", summary.Courses[1].CourseID)

	require.Len(t, summary.Contributors, 2)
	assert.Equal(t, "Emma Williams", summary.Contributors[0].Name)
	assert.Equal(t, 10, summary.Contributors[0].Score)
	assert.Equal(t, "James Rodriguez", summary.Contributors[1].Name)
	assert.Equal(t, 8, summary.Contributors[1].Score)
}

func TestDigest_RunPropagatesStoreFailure(t *testing.T) {
	d := newDigest(downStore{FactSource: inmem.Open()}, 3)

	_, err := d.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDataStoreUnavailable))
}

func TestDigest_Schedule(t *testing.T) {
	d := newDigest(inmem.Open(), 3)

	_, err := d.Schedule("not a schedule")
	assert.Error(t, err)

	c, err := d.Schedule("@every 1h")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
