package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearIsIdentity(t *testing.T) {
	l := Linear(4)
	assert.Equal(t, 4, l.Count())
	assert.Equal(t, []int{0, 1, 2, 3}, l.Table())
}

func TestReverseSegments(t *testing.T) {
	l := Layout{Segments: []Segment{{Count: 3}, {Count: 4, Reverse: true}, {Count: 2}}}
	assert.NoError(t, l.Validate())
	assert.Equal(t, 9, l.Count())
	assert.Equal(t, []int{0, 1, 2, 6, 5, 4, 3, 7, 8}, l.Table())
}

func TestIndexOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { Linear(2).Index(2) })
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Layout{Segments: []Segment{{Count: 2}, {Count: 0}}}.Validate(), ErrSegment)
}
