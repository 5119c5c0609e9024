package detection

import (
	"image"
)

// Contour is one connected run of edge pixels.
type Contour []image.Point

// BoundingRect returns the smallest axis-aligned rectangle enclosing c.
// Width and height count pixels inclusively, so a single pixel is 1×1.
func (c Contour) BoundingRect() Rect {
	if len(c) == 0 {
		return Rect{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := minX, minY
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
}

// Rect is an axis-aligned bounding rectangle in pixel space. (X, Y) is the
// top-left pixel.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// edgeGrid reads a binary edge map into a row-major boolean grid.
func edgeGrid(edges *image.Gray) ([][]bool, int, int) {
	bounds := edges.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	grid := make([][]bool, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			grid[y][x] = edges.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y != 0
		}
	}
	return grid, width, height
}

// FindExternalContours extracts the outermost contours of a binary edge map.
//
// Edge pixels are grouped into 8-connected components. A component counts as
// external when it touches the image border or borders the background that
// is reachable from the border without crossing an edge. Components sealed
// inside another closed outline (holes, nested shapes) are dropped.
//
// Points are reported in the edge map's coordinate space. Components are
// returned in raster discovery order: top-to-bottom, then left-to-right by
// their first pixel.
func FindExternalContours(edges *image.Gray) []Contour {
	grid, width, height := edgeGrid(edges)
	outside := floodOutside(grid, width, height)
	origin := edges.Bounds().Min

	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([]Contour, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !grid[y][x] || visited[y][x] {
				continue
			}
			component := make([]image.Point, 0)
			floodFill(grid, visited, x, y, width, height, &component)
			if !isExternal(component, outside, width, height) {
				continue
			}
			contour := make(Contour, len(component))
			for i, p := range component {
				contour[i] = p.Add(origin)
			}
			contours = append(contours, contour)
		}
	}

	return contours
}

// floodOutside marks every non-edge pixel reachable from the image border
// through 4-connected non-edge pixels. Four-connectivity matters: an
// 8-connected edge line must stop the flood even along its diagonals.
func floodOutside(grid [][]bool, width, height int) [][]bool {
	outside := make([][]bool, height)
	for y := 0; y < height; y++ {
		outside[y] = make([]bool, width)
	}

	stack := make([]image.Point, 0)
	push := func(x, y int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		if grid[y][x] || outside[y][x] {
			return
		}
		outside[y][x] = true
		stack = append(stack, image.Point{X: x, Y: y})
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	return outside
}

// isExternal reports whether a component lies on the border or has a
// 4-neighbour in the outside region.
func isExternal(component []image.Point, outside [][]bool, width, height int) bool {
	for _, p := range component {
		if p.X == 0 || p.Y == 0 || p.X == width-1 || p.Y == height-1 {
			return true
		}
		if outside[p.Y][p.X+1] || outside[p.Y][p.X-1] || outside[p.Y+1][p.X] || outside[p.Y-1][p.X] {
			return true
		}
	}
	return false
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large contours. Marks visited pixels and appends them to the contour.
// Uses 8-connectivity (includes diagonal neighbors).
func floodFill(edges, visited [][]bool, startX, startY, width, height int, contour *[]image.Point) {
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		*contour = append(*contour, p)

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}
