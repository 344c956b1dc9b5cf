// Package audio sounds a metronome click for every rate report so the
// simulation's pace can be heard without looking at the HUD
package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tickloop/constants"
	"github.com/lixenwraith/tickloop/engine"
)

// Options configures a Metronome
type Options struct {
	Enabled   bool
	TargetUPS int
	Volume    float64 // Linear gain in [0, 1]
}

// Metronome is the audio service; a missing audio device leaves it silent rather than failing startup
type Metronome struct {
	opts  Options
	rate  beep.SampleRate
	mixer *beep.Mixer

	mu          sync.Mutex
	initialized bool
	playing     bool
	cues        int
}

// NewMetronome creates an uninitialized metronome
func NewMetronome(opts Options) *Metronome {
	return &Metronome{
		opts:  opts,
		rate:  beep.SampleRate(constants.AudioSampleRate),
		mixer: &beep.Mixer{},
	}
}

// Name implements services.Service
func (m *Metronome) Name() string { return "audio" }

// Dependencies implements services.Service
func (m *Metronome) Dependencies() []string { return nil }

// Init opens the speaker
func (m *Metronome) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opts.Enabled || m.initialized {
		return nil
	}

	if err := speaker.Init(m.rate, m.rate.N(constants.AudioBufferDuration)); err != nil {
		log.Printf("audio: speaker unavailable, running silent: %v", err)
		return nil
	}
	m.initialized = true
	log.Printf("audio: speaker at %d Hz", m.rate)
	return nil
}

// Start attaches the mixer to the speaker
func (m *Metronome) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.playing {
		return nil
	}
	speaker.Play(m.mixer)
	m.playing = true
	return nil
}

// Stop silences pending clicks and closes the speaker
func (m *Metronome) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	speaker.Close()
	m.initialized = false
	m.playing = false
	log.Printf("audio: closed after %d clicks", m.cues)
	return nil
}

// Cue queues one click for a rate report; it is an engine.RateSink
func (m *Metronome) Cue(report engine.RateReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.playing {
		return
	}

	click, err := newClick(m.rate, ClickFreq(report, m.opts.TargetUPS), m.opts.Volume,
		constants.ClickDuration, constants.ClickAttack, constants.ClickRelease)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}

	speaker.Lock()
	m.mixer.Add(click)
	speaker.Unlock()
	m.cues++
}

// Cues returns the number of clicks queued so far
func (m *Metronome) Cues() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cues
}

// ClickFreq picks the click pitch: high when the report reached target, low when it fell short
func ClickFreq(report engine.RateReport, target int) float64 {
	if report.UPS >= target {
		return constants.ClickOnPaceFreq
	}
	return constants.ClickBehindFreq
}
