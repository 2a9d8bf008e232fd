// SPDX-License-Identifier: EPL-2.0

package utils

// CatmullRom interpolates between y1 and y2 at fraction t in [0, 1], using
// y0 and y3 as the outer control points. The curve passes through y1 at
// t=0 and y2 at t=1.
func CatmullRom(y0, y1, y2, y3, t float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*t+b)*t+c)*t + y1
}
