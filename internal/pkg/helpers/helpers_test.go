package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

func TestResolveLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
		wantErr   bool
	}{
		{name: "default", requested: 0, want: 10},
		{name: "explicit", requested: 5, want: 5},
		{name: "capped", requested: 500, want: 100},
		{name: "negative", requested: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLimit(tt.requested, 10, 100)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidScope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-4", "abc", "1.5"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidScope, raw)
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}
