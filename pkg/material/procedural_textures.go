package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// NewUVGridTexture creates a square texture that encodes U in red and V in green,
// crossed by dark grid lines dividing it into cells×cells squares.
// Used in place of a missing image so the mapping stays visible.
func NewUVGridTexture(size, cells int) *ImageTexture {
	if size <= 0 {
		return NewImageTexture(0, 0, nil)
	}
	if cells <= 0 {
		cells = 1
	}
	cellSize := max(1, size/cells)
	pixels := make([]core.Vec3, size*size)

	for y := 0; y < size; y++ {
		// Row 0 is the top of the image, which is v=1
		v := 1 - float64(y)/float64(max(1, size-1))
		for x := 0; x < size; x++ {
			u := float64(x) / float64(max(1, size-1))

			if x%cellSize == 0 || y%cellSize == 0 {
				pixels[y*size+x] = core.NewVec3(0.05, 0.05, 0.05)
				continue
			}
			pixels[y*size+x] = core.NewVec3(u, v, 0.25)
		}
	}

	return NewImageTexture(size, size, pixels)
}
