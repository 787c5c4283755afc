package detector

import (
	"image"

	"github.com/nfnt/resize"
)

// BuildInputTensor converts a decoded image into the flat NCHW float32 buffer
// the model consumes: resized to size x size with bilinear interpolation
// (aspect ratio is intentionally not preserved, the model expects a fixed
// square input), alpha discarded, one plane per channel in R, G, B order,
// every sample normalized to [0, 1] by dividing by 255.
//
// The returned slice always holds exactly 1*3*size*size elements.
func BuildInputTensor(img image.Image, size int) []float32 {
	resized := resize.Resize(uint(size), uint(size), img, resize.Bilinear)

	plane := size * size
	data := make([]float32, 3*plane)

	bounds := resized.Bounds()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := y*size + x
			// RGBA returns 16-bit samples; shift back down to 8 bits.
			data[i] = float32(r>>8) / 255.0
			data[plane+i] = float32(g>>8) / 255.0
			data[2*plane+i] = float32(b>>8) / 255.0
		}
	}
	return data
}

// InputShape returns the logical tensor shape matching BuildInputTensor's
// layout: batch 1, 3 channels, size rows, size columns.
func InputShape(size int) []int64 {
	return []int64{1, 3, int64(size), int64(size)}
}
