package releasefeed

var log Logger = discard{}

// SetLogger sends the handler logs (upstream fetches, cache hits and misses,
// dropped cache writes) to logger. Passing nil discards them again, which is the default.
func SetLogger(logger Logger) {
	if logger == nil {
		logger = discard{}
	}
	log = logger
}

// Logger is satisfied by *log.Logger, including the one returned by slog.NewLogLogger.
type Logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
}

type discard struct{}

func (discard) Print(v ...interface{})                 {}
func (discard) Printf(format string, v ...interface{}) {}
