package imaging

import (
	"image"
	"image/color"
	"testing"
)

var (
	testWhite = color.NRGBA{255, 255, 255, 255}
	testRed   = color.NRGBA{255, 0, 0, 255}
)

func TestDrawHLine_Clipped(t *testing.T) {
	img := createInMemoryImage(10, 5, testWhite)

	DrawHLine(img, 2, -5, 3, testRed)
	DrawHLine(img, 9, 0, 9, testRed)  // row off canvas
	DrawHLine(img, 4, 12, 20, testRed) // columns off canvas

	for x := 0; x < 10; x++ {
		want := testWhite
		if x <= 3 {
			want = testRed
		}
		if got := img.NRGBAAt(x, 2); got != want {
			t.Errorf("pixel (%d,2): got %v, want %v", x, got, want)
		}
		if got := img.NRGBAAt(x, 4); got != testWhite {
			t.Errorf("pixel (%d,4) should be untouched, got %v", x, got)
		}
	}
}

func TestDrawVLine_Reversed(t *testing.T) {
	img := createInMemoryImage(5, 10, testWhite)
	DrawVLine(img, 1, 7, 3, testRed)

	for y := 0; y < 10; y++ {
		want := testWhite
		if y >= 3 && y <= 7 {
			want = testRed
		}
		if got := img.NRGBAAt(1, y); got != want {
			t.Errorf("pixel (1,%d): got %v, want %v", y, got, want)
		}
	}
}

func TestDrawRect(t *testing.T) {
	img := createInMemoryImage(30, 30, testWhite)
	DrawRect(img, 10, 10, 20, 20, testRed, 2)

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{10, 10, testRed},
		{9, 9, testRed}, // thickness grows outward
		{20, 15, testRed},
		{21, 15, testRed},
		{15, 20, testRed},
		{15, 15, testWhite},
		{11, 15, testWhite},
		{8, 8, testWhite},
		{22, 22, testWhite},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 image.Point
		on     []image.Point
	}{
		{"horizontal", image.Pt(2, 5), image.Pt(17, 5), []image.Point{{2, 5}, {10, 5}, {17, 5}}},
		{"vertical", image.Pt(4, 18), image.Pt(4, 1), []image.Point{{4, 1}, {4, 9}, {4, 18}}},
		{"diagonal", image.Pt(0, 0), image.Pt(19, 19), []image.Point{{0, 0}, {10, 10}, {19, 19}}},
		{"single point", image.Pt(7, 7), image.Pt(7, 7), []image.Point{{7, 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(20, 20, testWhite)
			DrawLine(img, tt.p0, tt.p1, testRed, 1)
			for _, p := range tt.on {
				if got := img.NRGBAAt(p.X, p.Y); got != testRed {
					t.Errorf("pixel %v: got %v, want line colour", p, got)
				}
			}
		})
	}
}

func TestDrawLine_Thickness(t *testing.T) {
	img := createInMemoryImage(20, 20, testWhite)
	DrawLine(img, image.Pt(2, 10), image.Pt(17, 10), testRed, 2)

	for x := 2; x <= 17; x++ {
		if img.NRGBAAt(x, 9) != testRed || img.NRGBAAt(x, 10) != testRed {
			t.Fatalf("column %d: 2px line should cover rows 9 and 10", x)
		}
		if img.NRGBAAt(x, 11) != testWhite {
			t.Fatalf("column %d: row 11 should be untouched", x)
		}
	}
}

func TestFillCircle(t *testing.T) {
	img := createInMemoryImage(30, 30, testWhite)
	center := image.Pt(15, 15)
	FillCircle(img, center, 5, testRed)

	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			dx, dy := x-center.X, y-center.Y
			inside := dx*dx+dy*dy <= 25
			got := img.NRGBAAt(x, y) == testRed
			if got != inside {
				t.Errorf("pixel (%d,%d): painted=%t, want %t", x, y, got, inside)
			}
		}
	}
}

func TestFillCircle_NearEdge(t *testing.T) {
	img := createInMemoryImage(10, 10, testWhite)
	FillCircle(img, image.Pt(0, 0), 5, testRed)

	if img.NRGBAAt(0, 0) != testRed {
		t.Error("centre should be painted")
	}
}

func TestDrawText(t *testing.T) {
	img := createInMemoryImage(200, 40, testWhite)
	DrawText(img, image.Pt(10, 25), "12 px / 0.31 cm", testRed)

	painted := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 200; x++ {
			if img.NRGBAAt(x, y) != testWhite {
				painted++
				if y > 25+3 {
					t.Errorf("pixel (%d,%d) drawn too far below the baseline", x, y)
				}
			}
		}
	}
	if painted == 0 {
		t.Error("expected glyph pixels")
	}
}

func TestDrawText_Clipped(t *testing.T) {
	img := createInMemoryImage(20, 20, testWhite)
	DrawText(img, image.Pt(5, -10), "W:1.0cm H:1.0cm", testRed)
	DrawText(img, image.Pt(15, 10), "W:1.0cm H:1.0cm", testRed)
}

func TestTextWidth(t *testing.T) {
	if got := TextWidth(""); got != 0 {
		t.Errorf("empty string width: got %d, want 0", got)
	}
	if got := TextWidth("abc"); got != 21 {
		t.Errorf("width of abc: got %d, want 21", got)
	}
}
