package detection

import (
	"image"
	"image/color"
	"testing"
)

// createEdgeMap returns a blank edge map of the given bounds.
func createEdgeMap(bounds image.Rectangle) *image.Gray {
	return image.NewGray(bounds)
}

// drawOutline sets a one pixel rectangular outline with inclusive corners.
func drawOutline(t *testing.T, edges *image.Gray, x0, y0, x1, y1 int) {
	t.Helper()
	for x := x0; x <= x1; x++ {
		edges.SetGray(x, y0, color.Gray{255})
		edges.SetGray(x, y1, color.Gray{255})
	}
	for y := y0; y <= y1; y++ {
		edges.SetGray(x0, y, color.Gray{255})
		edges.SetGray(x1, y, color.Gray{255})
	}
}

func TestFindExternalContours_SingleOutline(t *testing.T) {
	edges := createEdgeMap(image.Rect(0, 0, 30, 30))
	drawOutline(t, edges, 5, 5, 14, 14)

	contours := FindExternalContours(edges)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	want := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if got := contours[0].BoundingRect(); got != want {
		t.Errorf("bounding rect: got %+v, want %+v", got, want)
	}
	if len(contours[0]) != 36 {
		t.Errorf("contour length: got %d, want 36", len(contours[0]))
	}
}

func TestFindExternalContours_NestedDropped(t *testing.T) {
	edges := createEdgeMap(image.Rect(0, 0, 30, 30))
	drawOutline(t, edges, 2, 2, 27, 27)
	drawOutline(t, edges, 10, 10, 15, 15)
	edges.SetGray(20, 20, color.Gray{255}) // stray pixel inside

	contours := FindExternalContours(edges)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1 (nested outlines dropped)", len(contours))
	}
	if got := contours[0].BoundingRect(); got.X != 2 || got.Width != 26 {
		t.Errorf("kept the wrong contour: %+v", got)
	}
}

func TestFindExternalContours_OpenShapeIsExternal(t *testing.T) {
	edges := createEdgeMap(image.Rect(0, 0, 30, 30))
	// U shape open at the top: its inside is reachable from the border
	for y := 5; y <= 20; y++ {
		edges.SetGray(5, y, color.Gray{255})
		edges.SetGray(20, y, color.Gray{255})
	}
	for x := 5; x <= 20; x++ {
		edges.SetGray(x, 20, color.Gray{255})
	}
	drawOutline(t, edges, 10, 10, 14, 14)

	contours := FindExternalContours(edges)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
}

func TestFindExternalContours_RasterOrder(t *testing.T) {
	edges := createEdgeMap(image.Rect(0, 0, 40, 40))
	drawOutline(t, edges, 25, 20, 30, 25)
	drawOutline(t, edges, 3, 2, 8, 7)
	drawOutline(t, edges, 15, 2, 20, 7)

	contours := FindExternalContours(edges)
	if len(contours) != 3 {
		t.Fatalf("got %d contours, want 3", len(contours))
	}

	wantX := []int{3, 15, 25}
	for i, c := range contours {
		if got := c.BoundingRect().X; got != wantX[i] {
			t.Errorf("contour %d: X = %d, want %d", i, got, wantX[i])
		}
	}
}

func TestFindExternalContours_DiagonalConnectivity(t *testing.T) {
	edges := createEdgeMap(image.Rect(0, 0, 10, 10))
	for i := 2; i < 8; i++ {
		edges.SetGray(i, i, color.Gray{255})
	}

	contours := FindExternalContours(edges)
	if len(contours) != 1 {
		t.Fatalf("diagonal run should be one contour, got %d", len(contours))
	}
	want := Rect{X: 2, Y: 2, Width: 6, Height: 6}
	if got := contours[0].BoundingRect(); got != want {
		t.Errorf("bounding rect: got %+v, want %+v", got, want)
	}
}

func TestFindExternalContours_TouchingBorder(t *testing.T) {
	edges := createEdgeMap(image.Rect(0, 0, 20, 20))
	// L shape along the border enclosing nothing
	for i := 0; i < 20; i++ {
		edges.SetGray(i, 0, color.Gray{255})
		edges.SetGray(0, i, color.Gray{255})
	}

	contours := FindExternalContours(edges)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
}

func TestFindExternalContours_Empty(t *testing.T) {
	edges := createEdgeMap(image.Rect(0, 0, 20, 20))
	if contours := FindExternalContours(edges); len(contours) != 0 {
		t.Errorf("got %d contours, want 0", len(contours))
	}
}

func TestFindExternalContours_OffsetBounds(t *testing.T) {
	edges := createEdgeMap(image.Rect(10, 10, 40, 40))
	drawOutline(t, edges, 15, 18, 25, 22)

	contours := FindExternalContours(edges)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	want := Rect{X: 15, Y: 18, Width: 11, Height: 5}
	if got := contours[0].BoundingRect(); got != want {
		t.Errorf("bounding rect: got %+v, want %+v", got, want)
	}
}

func TestContour_BoundingRect(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		want    Rect
	}{
		{"empty", nil, Rect{}},
		{"single pixel", Contour{{4, 7}}, Rect{X: 4, Y: 7, Width: 1, Height: 1}},
		{"horizontal", Contour{{1, 2}, {5, 2}, {3, 2}}, Rect{X: 1, Y: 2, Width: 5, Height: 1}},
		{"scattered", Contour{{9, 1}, {2, 8}, {5, 5}}, Rect{X: 2, Y: 1, Width: 8, Height: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.contour.BoundingRect(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFloodFill(t *testing.T) {
	width, height := 10, 10
	grid := make([][]bool, height)
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]bool, width)
		visited[y] = make([]bool, width)
	}

	// Three pixels 8-connected, one isolated
	grid[1][1] = true
	grid[2][2] = true
	grid[2][3] = true
	grid[7][7] = true

	var component []image.Point
	floodFill(grid, visited, 1, 1, width, height, &component)

	if len(component) != 3 {
		t.Errorf("component size: got %d, want 3", len(component))
	}
	if visited[7][7] {
		t.Error("isolated pixel should not be visited")
	}
}
