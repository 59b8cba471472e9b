// Package display renders training progress to a terminal using ANSI
// escape sequences: a live stats panel plus a grayscale preview of the
// digit the network is least confident about.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/synapse-ml/synapse/internal/algebra"
)

// ANSI control sequences.
const (
	clearScreen = "\x1b[2J"
	homeCursor  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetStyle  = "\x1b[0m"
)

// Stats is one epoch's evaluation snapshot.
type Stats struct {
	Epoch         int
	Epochs        int
	Cost          float64
	Accuracy      float64 // fraction correct on the test set, 0..1
	Confidence    float64 // mean output activation of the chosen class
	WorstExpected int     // label of the least confident prediction
	WorstActual   int     // what the network answered for it
}

// Screen writes frames to a terminal-like writer. The zero value is not
// usable; construct with New.
type Screen struct {
	w io.Writer
}

// New returns a screen that draws to w.
func New(w io.Writer) *Screen {
	return &Screen{w: w}
}

// Init clears the terminal and hides the cursor.
func (s *Screen) Init() {
	fmt.Fprint(s.w, clearScreen, hideCursor)
}

// Close restores the cursor.
func (s *Screen) Close() {
	fmt.Fprint(s.w, showCursor, resetStyle)
}

// Render draws one frame: the stats panel and, when image is non-nil,
// the least confident digit as a rows×cols grayscale block.
func (s *Screen) Render(st Stats, image algebra.Vector, rows, cols int) {
	var b strings.Builder
	b.WriteString(homeCursor)

	fmt.Fprintf(&b, "epoch      %d/%d\x1b[K\n", st.Epoch, st.Epochs)
	fmt.Fprintf(&b, "cost       %.6f\x1b[K\n", st.Cost)
	fmt.Fprintf(&b, "accuracy   %.2f%%\x1b[K\n", st.Accuracy*100)
	fmt.Fprintf(&b, "confidence %.2f%%\x1b[K\n", st.Confidence*100)
	fmt.Fprintf(&b, "hardest    expected %d, answered %d\x1b[K\n", st.WorstExpected, st.WorstActual)

	if image != nil && rows > 0 && cols > 0 && image.Len() >= rows*cols {
		b.WriteByte('\n')
		writeImage(&b, image, rows, cols)
	}

	fmt.Fprint(s.w, b.String())
}

// writeImage prints the digit with 24-bit background colors, two cells
// per pixel so the aspect ratio looks square.
func writeImage(b *strings.Builder, image algebra.Vector, rows, cols int) {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := image.At(row*cols + col)
			g := int(v * 255)
			fmt.Fprintf(b, "\x1b[48;2;%d;%d;%dm  ", g, g, g)
		}
		b.WriteString(resetStyle)
		b.WriteString("\x1b[K\n")
	}
}
