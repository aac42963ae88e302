package grpc

import (
	"sync"

	"github.com/rocketscienceinc/connect6-backend/internal/entity"
	"github.com/rocketscienceinc/connect6-backend/internal/usecase"
)

// streamSink buffers events for one Register stream. Closing it ends the stream
// once the buffered events have been sent.
type streamSink struct {
	events    chan entity.Event
	done      chan struct{}
	closeOnce sync.Once
}

func newStreamSink(bufferSize int) *streamSink {
	return &streamSink{
		events: make(chan entity.Event, bufferSize),
		done:   make(chan struct{}),
	}
}

func (that *streamSink) Send(event entity.Event) error {
	select {
	case <-that.done:
		return usecase.ErrSinkClosed
	default:
	}

	select {
	case that.events <- event:
		return nil
	default:
		return usecase.ErrSinkFull
	}
}

func (that *streamSink) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}
