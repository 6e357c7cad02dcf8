package motion

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/synapse/internal/field"
)

const (
	DefaultTokenInterval = 70 * time.Millisecond
	MinTokenRate         = 50
	MaxTokenRate         = 200
)

// Line is one sentence of a token stream. Rate is zero until the sentence
// has finished streaming.
type Line struct {
	Text string
	Rate int
}

// Suffix is the rate annotation shown after a finished sentence.
func (l Line) Suffix() string {
	if l.Rate == 0 {
		return ""
	}
	return fmt.Sprintf("%d tokens/sec", l.Rate)
}

func (l Line) String() string {
	if l.Rate == 0 {
		return l.Text
	}
	return l.Text + " " + l.Suffix()
}

// TokenStream reveals sentences word by word, like a model generating text.
type TokenStream struct {
	Interval time.Duration

	tokens  [][]string
	lines   []Line
	tok     int
	acc     time.Duration
	started bool
	src     field.Source
}

func NewTokenStream(sentences []string, src field.Source) *TokenStream {
	ts := &TokenStream{Interval: DefaultTokenInterval, src: src}
	for _, s := range sentences {
		if words := strings.Fields(s); len(words) > 0 {
			ts.tokens = append(ts.tokens, words)
		}
	}
	return ts
}

// Start begins streaming. Later calls are ignored.
func (ts *TokenStream) Start() { ts.started = true }

func (ts *TokenStream) Started() bool { return ts.started }

func (ts *TokenStream) Done() bool { return len(ts.lines) == len(ts.tokens) && ts.tok == 0 }

func (ts *TokenStream) Advance(dt time.Duration) {
	if !ts.started || ts.Done() {
		return
	}
	step := ts.Interval
	if step <= 0 {
		step = time.Millisecond
	}
	ts.acc += dt
	for ts.acc >= step && !ts.Done() {
		ts.acc -= step
		ts.step()
	}
}

func (ts *TokenStream) step() {
	cur := len(ts.lines)
	if ts.tok == 0 {
		ts.lines = append(ts.lines, Line{})
		cur = len(ts.lines)
	}
	words := ts.tokens[cur-1]
	if ts.tok < len(words) {
		ts.tok++
		ts.lines[cur-1].Text = strings.Join(words[:ts.tok], " ")
		return
	}
	ts.lines[cur-1].Rate = MinTokenRate + int(ts.src.Float64()*float64(MaxTokenRate-MinTokenRate+1))
	ts.tok = 0
}

// Lines returns the sentences revealed so far.
func (ts *TokenStream) Lines() []Line {
	return append([]Line(nil), ts.lines...)
}
