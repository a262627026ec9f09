package gridplot

// Point is a position in pixels. The origin is the top-left corner of the
// containing component, y grows downwards.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

// SpaceRequest is the minimum space a component asks for.
type SpaceRequest struct {
	MinWidth, MinHeight float64
}

// Bounds is an axis-aligned rectangle in pixels.
type Bounds struct {
	Origin Point
	Size
}

// Contains reports whether p lies inside b expanded by tolerance on
// every side.
func (b Bounds) Contains(p Point, tolerance float64) bool {
	return p.X >= b.Origin.X-tolerance && p.X <= b.Origin.X+b.Width+tolerance &&
		p.Y >= b.Origin.Y-tolerance && p.Y <= b.Origin.Y+b.Height+tolerance
}

// Intersects reports whether b overlaps the rectangle [0,w]x[0,h].
func (b Bounds) Intersects(w, h float64) bool {
	return b.Origin.X <= w && b.Origin.X+b.Width >= 0 &&
		b.Origin.Y <= h && b.Origin.Y+b.Height >= 0
}

// DistanceSquared returns the squared euclidean distance of p and q.
func DistanceSquared(p, q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}
