package render

import "testing"

func TestFramebufferDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
	}{
		{"horizontal", 1, 5, 8, 5},
		{"vertical", 3, 0, 3, 9},
		{"diagonal", 0, 0, 9, 9},
		{"reversed steep", 7, 9, 2, 1},
		{"single point", 4, 4, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(10, 10)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorRed)

			if fb.GetPixel(tc.x0, tc.y0) != ColorRed || fb.GetPixel(tc.x1, tc.y1) != ColorRed {
				t.Error("line endpoints not drawn")
			}

			// Bresenham sets exactly one pixel per step of the major axis.
			want := max(abs(tc.x1-tc.x0), abs(tc.y1-tc.y0)) + 1
			got := 0
			for _, p := range fb.Pixels {
				if p == ColorRed {
					got++
				}
			}
			if got != want {
				t.Errorf("drew %d pixels, want %d", got, want)
			}
		})
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(0, 4, ColorRed)
	if got := fb.GetPixel(10, 10); got != (Color{}) {
		t.Errorf("out of bounds GetPixel = %v", got)
	}
	// A line running off the raster must not panic.
	fb.DrawLine(-5, -5, 10, 10, ColorRed)
	if fb.GetPixel(2, 2) != ColorRed {
		t.Error("in-bounds part of clipped line not drawn")
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Resize(4, 2)
	if len(fb.Pixels) != 8 || fb.Width != 4 || fb.Height != 2 {
		t.Errorf("after shrink: %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	fb.Resize(20, 20)
	if len(fb.Pixels) != 400 {
		t.Errorf("after grow: %d pixels", len(fb.Pixels))
	}
	fb.Clear(ColorCyan)
	if fb.GetPixel(19, 19) != ColorCyan {
		t.Error("Clear did not reach the last pixel")
	}
}
