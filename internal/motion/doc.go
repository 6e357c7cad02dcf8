// Package motion holds the time-driven text and layout animations used by
// the portfolio page. Every animation is advanced explicitly with the
// elapsed time, so the same values come out of a bubbletea tick, a raylib
// frame or a test.
package motion
