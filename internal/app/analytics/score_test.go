package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

func TestEngagementScore(t *testing.T) {
	assert.Equal(t, 38, analytics.EngagementScore(4, 10, 6))
	assert.Zero(t, analytics.EngagementScore(0, 0, 0))
}

func TestContributionScore(t *testing.T) {
	m := &analytics.UserMetrics{
		PostsCount:        2,
		CommentsGiven:     3,
		ReactionsGiven:    1,
		CommentsReceived:  5,
		ReactionsReceived: 4,
	}
	// 2*3 + 3*2 + 1*1 + 5*2 + 4*1
	assert.Equal(t, 27, analytics.ReceivedWeights.Score(m))
	// 2*5 + 3*3 + 1*1
	assert.Equal(t, 20, analytics.AuthoredWeights.Score(m))
	assert.Equal(t, 6, analytics.ActivityWeights.Score(m))
}

func TestContributionScoreSumsGivenAndReceived(t *testing.T) {
	given := &analytics.UserMetrics{CommentsGiven: 1}
	received := &analytics.UserMetrics{CommentsReceived: 1}
	both := &analytics.UserMetrics{CommentsGiven: 1, CommentsReceived: 1}

	w := analytics.ReceivedWeights
	assert.Equal(t, w.Score(given)+w.Score(received), w.Score(both))
}

func TestPostEngagementScore(t *testing.T) {
	assert.Equal(t, 7, analytics.PostEngagementScore(2, 3))
}

func TestWeightsPreset(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		want    analytics.Weights
		wantErr bool
	}{
		{name: "default", preset: "", want: analytics.ReceivedWeights},
		{name: "received", preset: "received", want: analytics.ReceivedWeights},
		{name: "authored mixed case", preset: " Authored ", want: analytics.AuthoredWeights},
		{name: "activity", preset: "activity", want: analytics.ActivityWeights},
		{name: "unknown", preset: "karma", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analytics.WeightsPreset(tt.preset)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidScope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, analytics.Ratio(5, 0, 2))
	assert.Equal(t, 0.67, analytics.Ratio(2, 3, 2))
	assert.Equal(t, 2.5, analytics.Ratio(10, 4, 2))
	assert.Equal(t, 90.0, analytics.Round(45.0/50.0*100, 1))
	assert.Equal(t, 33.3, analytics.Round(100.0/3.0, 1))
}
