package constants

import "time"

// Loop timing
const (
	// DefaultTargetUPS is the fixed simulation rate
	DefaultTargetUPS = 20

	// DefaultMaxFrameTime caps a single sampled delta
	DefaultMaxFrameTime = time.Second

	// DefaultMaxFPS caps presentation; 0 renders as fast as the terminal accepts
	DefaultMaxFPS = 60

	// ReportInterval is the sampled time between UPS/FPS reports
	ReportInterval = time.Second
)

// Spinner
const (
	// DefaultSpinRate is the triangle's angular velocity in degrees per second
	DefaultSpinRate = 50.0

	// SpinRateStep is the change applied by the +/- keys
	SpinRateStep = 10.0

	// MaxSpinRate bounds the magnitude of the angular velocity
	MaxSpinRate = 720.0
)

// Terminal
const (
	// EventQueueSize buffers terminal events between the poller and Present
	EventQueueSize = 256

	// KeyQueueSize bounds keys waiting for the input handler; extras are dropped
	KeyQueueSize = 64
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "tickloop.log"
	MaxLogSize  = 10 * 1024 * 1024
)

// Debug server
const (
	DebugShutdownTimeout = 2 * time.Second
)
