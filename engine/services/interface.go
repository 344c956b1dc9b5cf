package services

// Service is an external resource the loop acquires before entering Running
// and releases on dispose: the terminal window, the audio device, the debug listener
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies lists services that must be initialized and started first
	Dependencies() []string

	// Init acquires the resource. A failure aborts startup
	Init() error

	// Start begins service operation
	// Called after every service has been initialized
	Start() error

	// Stop releases the resource
	Stop() error
}
