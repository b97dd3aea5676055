package engine

// Options carries the UCI-configurable engine settings, assembled by
// DefaultOptions and updated one field at a time by "setoption" handling in
// the uci package.
type Options struct {
	HashMB     int
	Threads    int
	Debug      bool
	Depth      int
	OwnBook    bool
	BookPath   string
	SyzygyPath string
}

// DefaultOptions returns the engine's out-of-the-box configuration: a
// 256MiB hash table, single-threaded search (this engine never searches in
// parallel, see ResetForNewGame/StartSearch), debug output off, and no book
// or tablebase wired in until the user configures one.
func DefaultOptions() Options {
	return Options{
		HashMB:  defaultTTSizeMB,
		Threads: 1,
		Debug:   false,
		Depth:   20,
	}
}

// MaxConfigurableDepth bounds the "setoption name Depth" value; requests
// above it are clamped rather than rejected outright.
const MaxConfigurableDepth = 20
