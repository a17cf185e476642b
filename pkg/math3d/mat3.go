package math3d

import "math"

// Mat3 is a 3x3 rotation matrix stored in row-major order.
//
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// RotationX creates a rotation around the X axis (pitch).
func RotationX(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotationY creates a rotation around the Y axis (yaw).
func RotationY(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotationZ creates a rotation around the Z axis (roll).
func RotationZ(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Mul returns the matrix product a * b. Applied to a vector, b acts first.
func (a Mat3) Mul(b Mat3) Mat3 {
	var r Mat3
	for row := range 3 {
		for col := range 3 {
			r[row*3+col] = a[row*3]*b[col] + a[row*3+1]*b[3+col] + a[row*3+2]*b[6+col]
		}
	}
	return r
}

// MulVec3 transforms v by the matrix.
func (a Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		a[0]*v.X + a[1]*v.Y + a[2]*v.Z,
		a[3]*v.X + a[4]*v.Y + a[5]*v.Z,
		a[6]*v.X + a[7]*v.Y + a[8]*v.Z,
	}
}

// Transpose returns the transpose, which for a rotation is its inverse.
func (a Mat3) Transpose() Mat3 {
	return Mat3{
		a[0], a[3], a[6],
		a[1], a[4], a[7],
		a[2], a[5], a[8],
	}
}
