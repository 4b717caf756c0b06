package renderer

import "errors"

var (
	// ErrChannelClosed means the sample stream ended before the expected sample count arrived
	ErrChannelClosed = errors.New("sample channel closed before render completed")
	// ErrWorkerPanic wraps a panic recovered from a render worker
	ErrWorkerPanic = errors.New("render worker panicked")
	// ErrIncomplete is returned when finalizing an accumulation that is still missing samples
	ErrIncomplete = errors.New("accumulation incomplete")
)
