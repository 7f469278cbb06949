package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter forwards each write to its target and flushes the target when it buffers.
// Writers created together by NewFlushingWriterPair share one lock, so report lines
// written to stdout and stderr during a watch cycle reach the terminal in call order.
type FlushingWriter struct {
	target io.Writer
	lock   *sync.Mutex
}

// NewFlushingWriter wraps writer with its own lock. Wrapped writers are returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	return wrapFlushing(writer, &sync.Mutex{})
}

// NewFlushingWriterPair wraps the report output and error output behind a shared lock.
func NewFlushingWriterPair(output io.Writer, errorOutput io.Writer) (io.Writer, io.Writer) {
	sharedLock := &sync.Mutex{}
	return wrapFlushing(output, sharedLock), wrapFlushing(errorOutput, sharedLock)
}

func wrapFlushing(writer io.Writer, lock *sync.Mutex) io.Writer {
	switch typedWriter := writer.(type) {
	case nil:
		return nil
	case *FlushingWriter:
		return typedWriter
	default:
		return &FlushingWriter{target: writer, lock: lock}
	}
}

// Write delegates to the target and flushes it when the target exposes Flush.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	if writer == nil || writer.target == nil {
		return 0, nil
	}

	writer.lock.Lock()
	defer writer.lock.Unlock()

	written, writeError := writer.target.Write(data)
	if writeError != nil {
		return written, writeError
	}
	if bufferedTarget, buffers := writer.target.(flusher); buffers {
		return written, bufferedTarget.Flush()
	}
	return written, nil
}
