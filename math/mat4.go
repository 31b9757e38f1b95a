package math

type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// TransformPoint maps a 2D point (z=0, w=1) through the matrix.
func (m Mat4) TransformPoint(p Vec2) Vec2 {
	x := p.X*m[0][0] + p.Y*m[1][0] + m[3][0]
	y := p.X*m[0][1] + p.Y*m[1][1] + m[3][1]
	w := p.X*m[0][3] + p.Y*m[1][3] + m[3][3]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Vec2{X: x, Y: y}
}

func Mat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	m := Mat4Identity()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[3][0] = -(right + left) / (right - left)
	m[3][1] = -(top + bottom) / (top - bottom)
	m[3][2] = -(far + near) / (far - near)
	return m
}

// Mat4ScreenSpace maps pixel coordinates (origin top-left, y down) to clip space.
func Mat4ScreenSpace(width, height float32) Mat4 {
	return Mat4Orthographic(0, width, height, 0, -1, 1)
}

// Flatten returns the matrix in column-major order for glUniformMatrix4fv.
func (m Mat4) Flatten() [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = m[i][j]
		}
	}
	return out
}
