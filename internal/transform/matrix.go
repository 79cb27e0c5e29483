package transform

// Mat4 is a 4×4 matrix acting on column vectors; m[row][col].
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m·n. With column vectors, m.Mul(n) applies n first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r][k] * n[k][c]
			}
			out[r][c] = sum
		}
	}
	return out
}

// Apply transforms the point (x, y, z, 1) and performs the perspective
// divide when the resulting w differs from 1.
func (m Mat4) Apply(x, y, z float64) (float64, float64, float64) {
	ox := m[0][0]*x + m[0][1]*y + m[0][2]*z + m[0][3]
	oy := m[1][0]*x + m[1][1]*y + m[1][2]*z + m[1][3]
	oz := m[2][0]*x + m[2][1]*y + m[2][2]*z + m[2][3]
	ow := m[3][0]*x + m[3][1]*y + m[3][2]*z + m[3][3]
	if ow != 0 && ow != 1 {
		ox /= ow
		oy /= ow
		oz /= ow
	}
	return ox, oy, oz
}

// nearIdentity reports whether every entry is within eps of the identity.
func (m Mat4) nearIdentity(eps float64) bool {
	id := Identity()
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			d := m[r][c] - id[r][c]
			if d > eps || d < -eps {
				return false
			}
		}
	}
	return true
}
