// Package viz provides the terminal drawing primitives for the portfolio.
//
//   - [Canvas]: Braille-based pixel canvas; implements particle.Surface
//   - [Theme]: colour schemes, including the time-of-day themes
//   - bars, sparklines and gradient text used by the dashboards
//
// Canvas keeps one colour per terminal cell: the brightest sample drawn into
// it during the frame. Alpha is emulated by blending toward black and by
// stippling faint lines.
package viz
