package constants

import "time"

// Audio output
const (
	// AudioSampleRate is the speaker rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration sizes the speaker buffer
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultAudioVolume is the linear click gain in [0, 1]
	DefaultAudioVolume = 0.5
)

// Metronome click, one per rate report
const (
	ClickDuration = 60 * time.Millisecond
	ClickAttack   = 3 * time.Millisecond
	ClickRelease  = 40 * time.Millisecond

	// ClickOnPaceFreq sounds when the simulation kept its target rate
	ClickOnPaceFreq = 880.0

	// ClickBehindFreq sounds when fewer updates ran than targeted
	ClickBehindFreq = 220.0
)
