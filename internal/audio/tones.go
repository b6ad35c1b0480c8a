package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// note is one step of a generated jingle. A zero frequency is a rest.
type note struct {
	freq     float64
	duration time.Duration
}

func fallbackTone(track Track) []note {
	switch track {
	case TrackWin:
		return []note{{523.25, 120 * time.Millisecond}, {659.25, 120 * time.Millisecond}, {783.99, 120 * time.Millisecond}, {1046.5, 360 * time.Millisecond}}
	case TrackLose:
		return []note{{392, 200 * time.Millisecond}, {311.13, 200 * time.Millisecond}, {261.63, 500 * time.Millisecond}}
	}
	return []note{{110, 400 * time.Millisecond}, {0, 200 * time.Millisecond}, {146.83, 400 * time.Millisecond}, {0, 200 * time.Millisecond}}
}

// toneGenerator streams a sequence of enveloped sine notes.
type toneGenerator struct {
	notes []note
	rate  beep.SampleRate
	index int
	pos   int
	phase float64
}

func newToneGenerator(notes []note, rate beep.SampleRate) *toneGenerator {
	return &toneGenerator{notes: notes, rate: rate}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.index >= len(g.notes) {
			return i, i > 0
		}
		nt := g.notes[g.index]
		length := g.rate.N(nt.duration)

		val := 0.0
		if nt.freq > 0 {
			// Short linear attack and release avoid clicks between notes.
			edge := float64(g.rate.N(5 * time.Millisecond))
			env := math.Min(1, math.Min(float64(g.pos)/edge, float64(length-g.pos)/edge))
			val = 0.25 * env * math.Sin(2*math.Pi*g.phase)
			g.phase += nt.freq / float64(g.rate)
			g.phase -= math.Floor(g.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		g.pos++
		if g.pos >= length {
			g.index++
			g.pos = 0
		}
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error { return nil }

// renderTone renders notes into a buffer at the speaker sample rate.
func renderTone(notes []note) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(newToneGenerator(notes, sampleRate))
	return buf
}
