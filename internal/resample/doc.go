// Package resample produces downscaled copies of images for the
// logoshrink CLI.
//
// Two Lanczos backends are available:
//
//	imaging  github.com/disintegration/imaging, imaging.Lanczos (default)
//	nfnt     github.com/nfnt/resize, resize.Lanczos3
//
// Both resample to exactly the requested width and height; aspect ratio
// is the caller's concern. Paletted images are sampled nearest-neighbor
// so every output pixel is still a palette entry, then re-indexed onto
// the source palette. For every other supported layout the result is
// converted back to the source's image type with golang.org/x/image/draw,
// so a resize never changes the color mode.
//
// Targets are computed from the original image's dimensions by Target
// functions: Scale for proportional passes and Fixed for absolute ones.
package resample
