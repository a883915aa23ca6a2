package bench

// BenchErr is the error kind of the benchmark engine.
type BenchErr string

func (err BenchErr) Error() string {
	return string(err)
}

const (
	ErrUnknownKind   BenchErr = "[bench] unknown container kind"
	ErrInvalidRepeat BenchErr = "[bench] repeat has to be positive"
	ErrNoSuites      BenchErr = "[bench] no suites to run"
	ErrSinkClosed    BenchErr = "[bench] sink closed"
)
