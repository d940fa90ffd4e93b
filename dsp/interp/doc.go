// Package interp provides interpolation primitives for resampling irregularly
// sampled series onto a uniform grid.
//
// Available methods:
//
//   - [Linear2]:         2-point linear interpolation
//   - [PiecewiseLinear]: linear interpolation through arbitrary, strictly
//     increasing knots with flat extrapolation outside the knot range
//
// Extrapolation is never implicit. Outside [first knot, last knot] a
// [PiecewiseLinear] returns the value of the nearest end knot, so the filled
// series stays bounded by the observed data.
package interp
