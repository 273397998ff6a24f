// Package imageio loads source images and writes encoded passes to disk
// for the logoshrink CLI.
//
// Decoding and encoding go through github.com/disintegration/imaging,
// which registers the PNG, JPEG, GIF, BMP, and TIFF codecs and lets the
// output format follow the output file's extension. The encoder never
// computes sizes in memory: every Encode call stats the file it just
// wrote, so the size gate always sees what is actually on disk.
//
// Failures are reported as *model.CLIError values:
//   - ExitDecodeFailed when the source is missing or not an image
//   - ExitIOFailed when the output cannot be written
package imageio
