package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

// Weights parameterizes the contribution score of a user
type Weights struct {
	Posts             int `json:"posts" yaml:"posts"`
	Comments          int `json:"comments" yaml:"comments"`
	Reactions         int `json:"reactions" yaml:"reactions"`
	CommentsReceived  int `json:"commentsReceived" yaml:"commentsReceived"`
	ReactionsReceived int `json:"reactionsReceived" yaml:"reactionsReceived"`
}

// Weight presets
var (
	// ReceivedWeights rewards both authored content and the response it gets
	ReceivedWeights = Weights{Posts: 3, Comments: 2, Reactions: 1, CommentsReceived: 2, ReactionsReceived: 1}
	// AuthoredWeights only counts what the user wrote
	AuthoredWeights = Weights{Posts: 5, Comments: 3, Reactions: 1}
	// ActivityWeights counts every authored interaction equally
	ActivityWeights = Weights{Posts: 1, Comments: 1, Reactions: 1}
)

const DefaultWeightsPreset = "received"

var weightPresets = map[string]Weights{
	"received": ReceivedWeights,
	"authored": AuthoredWeights,
	"activity": ActivityWeights,
}

// WeightsPreset resolves a preset name. An empty name selects the default preset.
func WeightsPreset(name string) (Weights, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultWeightsPreset
	}
	w, ok := weightPresets[name]
	if !ok {
		return Weights{}, apperrors.NewInvalidScopeError(fmt.Sprintf("unknown weights preset %q", name))
	}
	return w, nil
}

// Score computes the contribution score of m
func (w Weights) Score(m *UserMetrics) int {
	return m.PostsCount*w.Posts +
		m.CommentsGiven*w.Comments +
		m.ReactionsGiven*w.Reactions +
		m.CommentsReceived*w.CommentsReceived +
		m.ReactionsReceived*w.ReactionsReceived
}

// EngagementScore is the fixed course engagement formula
func EngagementScore(posts, comments, reactions int) int {
	return posts*3 + comments*2 + reactions
}

// PostEngagementScore ranks individual posts
func PostEngagementScore(comments, reactions int) int {
	return reactions + comments*2
}

// Ratio returns num/den rounded to places decimals, or 0 when den is 0
func Ratio(num, den int, places int) float64 {
	if den == 0 {
		return 0
	}
	return Round(float64(num)/float64(den), places)
}

// Round rounds half away from zero to places decimals
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
