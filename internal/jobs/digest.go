package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/yigit/eduverse/internal/app/models/dto"
	"github.com/yigit/eduverse/internal/app/services"
)

// DigestSummary is what one digest run logged
type DigestSummary struct {
	Courses      []dto.CourseEngagementResponse
	Contributors []dto.ContributorResponse
}

// Digest periodically logs the most engaged courses and the top contributors
type Digest struct {
	reports services.ReportService
	size    int
	timeout time.Duration
	logger  zerolog.Logger
}

// NewDigest creates a digest of the size best courses and contributors
func NewDigest(reports services.ReportService, size int, logger zerolog.Logger) *Digest {
	if size <= 0 {
		size = 5
	}
	return &Digest{
		reports: reports,
		size:    size,
		timeout: time.Minute,
		logger:  logger.With().Str("job", "digest").Logger(),
	}
}

// Run computes and logs one digest
func (d *Digest) Run(ctx context.Context) (*DigestSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	courses, err := d.reports.GetCourseEngagementAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("digest course engagement: %w", err)
	}
	if len(courses) > d.size {
		courses = courses[:d.size]
	}

	contributors, err := d.reports.GetTopContributorsLeaderboard(ctx, dto.ContributorsRequest{Limit: d.size})
	if err != nil {
		return nil, fmt.Errorf("digest contributors: %w", err)
	}

	for i, c := range courses {
		d.logger.Info().
			Int("rank", i+1).
			Str("courseId", c.CourseID).
			Int("engagementScore", c.EngagementScore).
			Int("uniqueContributors", c.UniqueContributors).
			Msg("Digest course")
	}
	for i, u := range contributors {
		d.logger.Info().
			Int("rank", i+1).
			Int64("userId", u.UserID).
			Str("name", u.Name).
			Int("score", u.Score).
			Msg("Digest contributor")
	}
	return &DigestSummary{Courses: courses, Contributors: contributors}, nil
}

// Schedule registers the digest on a new cron scheduler and starts it.
// The caller stops the returned scheduler on shutdown.
func (d *Digest) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := d.Run(context.Background()); err != nil {
			d.logger.Error().Err(err).Msg("Digest run failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	c.Start()
	d.logger.Info().Str("schedule", spec).Int("size", d.size).Msg("Digest scheduler started")
	return c, nil
}
