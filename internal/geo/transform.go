// Package geo converts between the flat pixel space of an equirectangular
// panorama and the angular (yaw/pitch) space of a spherical viewer.
//
// An equirectangular image maps horizontal position linearly to yaw in
// [-180, 180) and vertical position linearly to pitch in [-90, 90].
package geo

import (
	"errors"
	"math"
)

// ErrInvalidDimensions is returned when a transform is requested for an
// image with non-positive width or height.
var ErrInvalidDimensions = errors.New("geo: image dimensions must be positive")

// PixelToAngular maps a pixel position on an equirectangular image of the
// given size to yaw/pitch degrees. Callers must supply in-range pixels;
// the transform performs no wrap-around normalization, so x == width is a
// caller error rather than yaw 180.
func PixelToAngular(x, y, width, height int) (yaw, pitch float64, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, ErrInvalidDimensions
	}
	yaw = (float64(x)/float64(width))*360 - 180
	pitch = 90 - (float64(y)/float64(height))*180
	return yaw, pitch, nil
}

// AngularToPixel maps yaw/pitch degrees back to a pixel position, rounding
// to the nearest pixel. Round-tripping an in-range pixel through
// PixelToAngular and back lands within one pixel of the original.
func AngularToPixel(yaw, pitch float64, width, height int) (x, y int, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, ErrInvalidDimensions
	}
	x = int(math.Round(((yaw + 180) / 360) * float64(width)))
	y = int(math.Round(((90 - pitch) / 180) * float64(height)))
	return x, y, nil
}
