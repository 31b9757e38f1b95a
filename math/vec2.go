package math

// Vec2 is a point in screen space, in pixels from the top-left corner.
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}
