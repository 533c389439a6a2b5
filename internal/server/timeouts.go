package server

import "time"

const (
	readTimeout = 10 * time.Second
	// A first career lookup walks one upstream request per season played,
	// so writes get far more headroom than reads.
	writeTimeout = 60 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
