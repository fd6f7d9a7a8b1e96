package core

import (
	"image"
	"image/color"
)

// Frame holds the linear radiance of every pixel, row-major from the top-left corner
type Frame struct {
	Width  int
	Height int
	Pixels []Vec3
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]Vec3, width*height),
	}
}

// At returns the color of pixel (i, j)
func (f *Frame) At(i, j int) Vec3 {
	return f.Pixels[j*f.Width+i]
}

// Set stores the color of pixel (i, j)
func (f *Frame) Set(i, j int, c Vec3) {
	f.Pixels[j*f.Width+i] = c
}

// Row returns the slice backing scan-line j
func (f *Frame) Row(j int) []Vec3 {
	return f.Pixels[j*f.Width : (j+1)*f.Width]
}

// Image converts the frame to an 8-bit RGBA image using the same quantization as ToRGB
func (f *Frame) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			r, g, b := ToRGB(f.At(i, j), gamma)
			img.SetRGBA(i, j, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
