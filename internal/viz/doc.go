// Package viz provides terminal rendering for the particle field.
//
//   - [Canvas]: Braille-based pixel canvas with per-cell intensity, labels
//     and pinned captions
//   - [CanvasSurface]: adapts a Canvas to field.Surface
//   - Theme selection with 5 built-in color schemes
//   - Shared lipgloss styles for the portfolio page
package viz
