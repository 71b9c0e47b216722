package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/eduverse/internal/pkg/apperrors"
)

type query struct {
	Limit    int    `validate:"omitempty,min=1,max=50"`
	Role     string `validate:"omitempty,oneof=student instructor"`
	CourseID string `validate:"omitempty,coursecode"`
}

func TestIsCourseCode(t *testing.T) {
	for _, code := range []string{"CS101", "MATH201", "PHYS1010H", "ENGL2000"} {
		assert.True(t, IsCourseCode(code), code)
	}
	for _, code := range []string{"", "cs101", "C101", "CS10", "CS101HH", "COMPUTE101"} {
		assert.False(t, IsCourseCode(code), code)
	}
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(query{}))
	require.NoError(t, Struct(query{Limit: 5, Role: "student", CourseID: "CS101"}))

	err := Struct(query{Limit: 80, CourseID: "cs-101"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidScope)

	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "Limit must be at most 50", custom.Details["Limit"])
	assert.Equal(t, "CourseID must be a course code such as CS101", custom.Details["CourseID"])
}
