package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/eduverse/internal/app/analytics"
	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

func TestScopeValidate(t *testing.T) {
	tests := []struct {
		name    string
		scope   analytics.Scope
		wantErr bool
	}{
		{name: "global", scope: analytics.GlobalScope()},
		{name: "course", scope: analytics.CourseScope("CS101")},
		{name: "long course code", scope: analytics.CourseScope("PHYS1010H")},
		{name: "lower case course", scope: analytics.CourseScope("cs101"), wantErr: true},
		{name: "empty course", scope: analytics.CourseScope(""), wantErr: true},
		{name: "injection attempt", scope: analytics.CourseScope("CS101'; DROP TABLE posts"), wantErr: true},
		{name: "user", scope: analytics.UserScope(7)},
		{name: "zero user", scope: analytics.UserScope(0), wantErr: true},
		{name: "negative user", scope: analytics.UserScope(-3), wantErr: true},
		{name: "unknown kind", scope: analytics.Scope{Kind: "faculty"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidScope)
		})
	}
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "global", analytics.GlobalScope().String())
	assert.Equal(t, "course:CS101", analytics.CourseScope("CS101").String())
	assert.Equal(t, "user:42", analytics.UserScope(42).String())
}
