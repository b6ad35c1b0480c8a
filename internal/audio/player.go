// Package audio plays the background loop and the win and lose jingles.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"raystein/internal/config"
)

const sampleRate = beep.SampleRate(44100)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Track names the music the game switches between.
type Track int

const (
	TrackNone Track = iota
	TrackBackground
	TrackWin
	TrackLose
)

// Player owns the speaker mixer. Every method is a no-op until Init
// succeeds, so the game runs silently when audio is disabled or missing.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	dir         string
	mixer       *beep.Mixer
	current     *beep.Ctrl
	currentName Track
	buffers     map[Track]*beep.Buffer
	initialized bool
}

// NewPlayer creates a player that resolves track file names under dir.
func NewPlayer(cfg config.AudioConfig, dir string) *Player {
	return &Player{
		cfg:     cfg,
		dir:     dir,
		mixer:   &beep.Mixer{},
		buffers: make(map[Track]*beep.Buffer),
	}
}

// Init opens the speaker and decodes every configured track. Tracks that
// fail to load are replaced by generated tones.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	for track, name := range map[Track]string{
		TrackBackground: p.cfg.Background,
		TrackWin:        p.cfg.Win,
		TrackLose:       p.cfg.Lose,
	} {
		buf, err := p.loadTrack(name)
		if err != nil {
			log.Printf("Warning: audio track %q: %v, using generated tone", name, err)
			buf = renderTone(fallbackTone(track))
		}
		p.buffers[track] = buf
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Current returns the track playing now.
func (p *Player) Current() Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentName
}

// PlayBackground loops the background track unless it is already playing.
func (p *Player) PlayBackground() {
	p.play(TrackBackground, true)
}

// PlayWin stops the loop and plays the win jingle once.
func (p *Player) PlayWin() {
	p.play(TrackWin, false)
}

// PlayLose stops the loop and plays the lose jingle once.
func (p *Player) PlayLose() {
	p.play(TrackLose, false)
}

// Stop silences everything.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.current = nil
	p.currentName = TrackNone
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
}

func (p *Player) play(track Track, loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if p.currentName == track && p.current != nil && !p.current.Paused {
		return
	}
	buf, ok := p.buffers[track]
	if !ok || buf.Len() == 0 {
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if loop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	ctrl := &beep.Ctrl{Streamer: p.withVolume(s)}

	speaker.Lock()
	p.mixer.Clear()
	p.mixer.Add(ctrl)
	speaker.Unlock()

	p.current = ctrl
	p.currentName = track
}

func (p *Player) withVolume(s beep.Streamer) beep.Streamer {
	v := p.cfg.Volume
	if v == 1 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(math.Max(v, 1e-6)),
		Silent:   v <= 0,
	}
}

// loadTrack decodes a file fully into memory so it can be looped and
// restarted without touching the disk again.
func (p *Player) loadTrack(name string) (*beep.Buffer, error) {
	if name == "" {
		return nil, os.ErrNotExist
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.dir, name)
	}
	return decodeFile(path)
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	format.SampleRate = sampleRate

	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}
