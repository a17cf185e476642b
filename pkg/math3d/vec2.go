package math3d

// Vec2 is a 2D point, used for projected screen positions.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Cross returns the z component of the 2D cross product a × b, which is
// twice the signed area of the triangle (0, a, b).
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// SignedArea2 returns twice the signed area of triangle (a, b, c) in
// screen space. With Y pointing down, a negative value means the
// vertices appear counter-clockwise on screen.
func SignedArea2(a, b, c Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}
