package storage

import (
	"encoding/binary"
	"fmt"
	"math"
)

// encodeGrid packs heights as little-endian int32s.
func encodeGrid(cells []int) ([]byte, error) {
	buf := make([]byte, 0, 4*len(cells))
	for i, h := range cells {
		if h < math.MinInt32 || h > math.MaxInt32 {
			return nil, fmt.Errorf("storage: height %d at cell %d does not fit in 32 bits", h, i)
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(h)))
	}
	return buf, nil
}

// decodeGrid is the inverse of encodeGrid.
func decodeGrid(blob []byte) ([]int, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("storage: grid blob length %d is not a multiple of 4", len(blob))
	}
	cells := make([]int, len(blob)/4)
	for i := range cells {
		cells[i] = int(int32(binary.LittleEndian.Uint32(blob[4*i:])))
	}
	return cells, nil
}
