package neighbor

import (
	"fmt"

	"github.com/katalvlaran/envmatch/geom"
)

// List is the computed neighbor table: a dense Len()×Width() row-major layout
// of neighbor indices and wrapped displacement vectors.
type List struct {
	index   []int
	vectors []geom.Vec3
	width   int
	count   int
}

var _ Source = (*List)(nil)

// Len returns the number of particles.
func (l *List) Len() int {
	return l.count
}

// Width returns the number of neighbors stored per particle.
func (l *List) Width() int {
	return l.width
}

// Neighbors returns a copy of particle i's displacement vectors, nearest first.
func (l *List) Neighbors(i int) ([]geom.Vec3, error) {
	if i < 0 || i >= l.count {
		return nil, fmt.Errorf("Neighbors(%d) of %d: %w", i, l.count, ErrIndexOutOfRange)
	}
	row := l.vectors[i*l.width : (i+1)*l.width]

	return append([]geom.Vec3(nil), row...), nil
}

// Indices returns a copy of particle i's neighbor indices, nearest first.
func (l *List) Indices(i int) ([]int, error) {
	if i < 0 || i >= l.count {
		return nil, fmt.Errorf("Indices(%d) of %d: %w", i, l.count, ErrIndexOutOfRange)
	}
	row := l.index[i*l.width : (i+1)*l.width]

	return append([]int(nil), row...), nil
}
