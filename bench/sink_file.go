package bench

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/safeopen"

	"github.com/benz9527/xlinear/lib/hrtime"
	"github.com/benz9527/xlinear/lib/infra"
)

var _ Sink = (*FileSink)(nil)

// FileSink appends the results as JSON lines to a report file beneath a
// directory. The file name cannot escape the directory.
type FileSink struct {
	lock sync.Mutex
	file *os.File
}

// NewFileSink creates the report directory when missing and opens the
// report file for appending. An empty filename derives one from the
// current UTC time.
func NewFileSink(dir, filename string) (*FileSink, error) {
	if filename == "" {
		filename = fmt.Sprintf("bench-%s.jsonl", hrtime.NowInUTC().Format("20060102T150405"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] report dir "+dir)
	}
	f, err := safeopen.OpenFileBeneath(dir, filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] report file "+filename)
	}
	return &FileSink{file: f}, nil
}

func (s *FileSink) Name() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.file == nil {
		return ""
	}
	return s.file.Name()
}

func (s *FileSink) Write(_ context.Context, results []Result) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.file == nil {
		return ErrSinkClosed
	}
	w := bufio.NewWriter(s.file)
	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return infra.WrapErrorStackWithMessage(err, "[bench] report encode")
		}
	}
	if err := w.Flush(); err != nil {
		return infra.WrapErrorStackWithMessage(err, "[bench] report flush")
	}
	return nil
}

func (s *FileSink) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
