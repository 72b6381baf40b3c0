package pager

import (
	"io"
	"os"
	"os/signal"
	"sync"
)

type keyResult struct {
	key Key
	err error
}

// resizeKeySource forwards keys from a blocking source and turns resize
// signals into KeyResize.
type resizeKeySource struct {
	keys    chan keyResult
	signals <-chan os.Signal
	done    chan struct{}
	once    sync.Once
	stop    func()
}

// WithResizeSignals wraps src so terminal resizes wake the navigator. The
// returned func stops signal delivery; call it when the session ends. On
// platforms without resize signals src is returned as is.
func WithResizeSignals(src KeySource) (KeySource, func() error) {
	sigs := resizeSignals()
	if len(sigs) == 0 {
		return src, func() error { return nil }
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	r := newResizeKeySource(src, ch, func() { signal.Stop(ch) })
	return r, r.Close
}

func newResizeKeySource(src KeySource, signals <-chan os.Signal, stop func()) *resizeKeySource {
	r := &resizeKeySource{
		keys:    make(chan keyResult),
		signals: signals,
		done:    make(chan struct{}),
		stop:    stop,
	}
	go func() {
		for {
			key, err := src.ReadKey()
			select {
			case r.keys <- keyResult{key: key, err: err}:
			case <-r.done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return r
}

func (r *resizeKeySource) ReadKey() (Key, error) {
	select {
	case <-r.done:
		return Key{}, io.EOF
	default:
	}
	select {
	case res := <-r.keys:
		if res.err != nil {
			_ = r.Close()
		}
		return res.key, res.err
	case <-r.signals:
		return Key{Kind: KeyResize}, nil
	case <-r.done:
		return Key{}, io.EOF
	}
}

// Close stops signal delivery. The forwarding goroutine exits once the
// pending read on the source returns.
func (r *resizeKeySource) Close() error {
	r.once.Do(func() {
		if r.stop != nil {
			r.stop()
		}
		close(r.done)
	})
	return nil
}
