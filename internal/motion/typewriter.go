package motion

import "time"

const (
	DefaultTypeSpeed   = 70 * time.Millisecond
	DefaultDeleteSpeed = 50 * time.Millisecond
	DefaultDelay       = 2 * time.Second
	CursorBlink        = 500 * time.Millisecond
)

type phase int

const (
	typing phase = iota
	holding
	deleting
	stopped
)

// Typewriter cycles through Words, typing and deleting one rune at a time.
type Typewriter struct {
	Words       []string
	TypeSpeed   time.Duration
	DeleteSpeed time.Duration
	Delay       time.Duration
	Loop        bool

	word    int
	n       int
	phase   phase
	acc     time.Duration
	elapsed time.Duration
}

func NewTypewriter(words []string, loop bool) *Typewriter {
	return &Typewriter{
		Words:       words,
		TypeSpeed:   DefaultTypeSpeed,
		DeleteSpeed: DefaultDeleteSpeed,
		Delay:       DefaultDelay,
		Loop:        loop,
	}
}

func (t *Typewriter) interval() time.Duration {
	switch t.phase {
	case holding:
		return t.Delay
	case deleting:
		return t.DeleteSpeed
	default:
		return t.TypeSpeed
	}
}

func (t *Typewriter) Advance(dt time.Duration) {
	t.elapsed += dt
	if len(t.Words) == 0 || t.phase == stopped {
		return
	}
	t.acc += dt
	for t.phase != stopped {
		step := t.interval()
		if step <= 0 {
			step = time.Millisecond
		}
		if t.acc < step {
			return
		}
		t.acc -= step
		t.step()
	}
}

func (t *Typewriter) step() {
	word := []rune(t.Words[t.word])
	switch t.phase {
	case typing:
		if t.n < len(word) {
			t.n++
		}
		if t.n == len(word) {
			if !t.Loop && t.word == len(t.Words)-1 {
				t.phase = stopped
				return
			}
			t.phase = holding
		}
	case holding:
		t.phase = deleting
	case deleting:
		if t.n > 0 {
			t.n--
		}
		if t.n == 0 {
			t.word = (t.word + 1) % len(t.Words)
			t.phase = typing
		}
	}
}

// Text is the currently typed prefix of the active word.
func (t *Typewriter) Text() string {
	if len(t.Words) == 0 {
		return ""
	}
	return string([]rune(t.Words[t.word])[:t.n])
}

// Word is the index of the active word.
func (t *Typewriter) Word() int { return t.word }

func (t *Typewriter) CursorVisible() bool {
	return (t.elapsed/CursorBlink)%2 == 0
}
