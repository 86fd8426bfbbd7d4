package rpeg

import "github.com/jpfielding/rpeg/pkg/util"

// RunID derives a stable identifier from img's pixel bytes, purely for
// tagging log lines. Identical pixel data yields the same identifier; a
// decompressed image is a lossy reconstruction and generally does not hash
// to the same identifier as its source. It never appears in the compressed
// stream.
func RunID(img *Image) string {
	pixels := img.Pixels.IterRowMajor()
	raw := make([]byte, 0, len(pixels)*3)
	for _, cell := range pixels {
		raw = append(raw, cell.Value.R, cell.Value.G, cell.Value.B)
	}
	return util.HashUUID(raw)
}
