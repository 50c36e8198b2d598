package player

import (
	"sync"
	"time"
)

// Sink abstracts the media output a [Player] drives. Implementations wrap an
// actual audio backend; the console default advances a clock without output.
//
// A sink reports end-of-media and decode failures through the callbacks
// registered with OnEnded and OnError.
type Sink interface {
	Load(src string, duration float64) error
	Play() error
	Pause() error
	Stop() error
	Seek(seconds float64) error
	SetVolume(volume float64) error
	Position() float64
	OnEnded(fn func())
	OnError(fn func(error))
}

// silentSink is a clock-only sink: it tracks playback position in real time
// without producing audio. Used by console builds and as the default when no
// audio backend is wired.
type silentSink struct {
	mu       sync.Mutex
	playing  bool
	position float64
	duration float64
	ticker   *time.Ticker
	stop     chan struct{}
	onEnded  func()
}

// NewSilentSink creates a sink that advances position on a wall clock.
func NewSilentSink() Sink {
	return &silentSink{}
}

func (s *silentSink) Load(src string, duration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopClockLocked()
	s.position = 0
	s.duration = duration
	s.playing = false
	return nil
}

func (s *silentSink) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playing {
		return nil
	}
	s.playing = true

	s.ticker = time.NewTicker(250 * time.Millisecond)
	s.stop = make(chan struct{})
	go s.run(s.ticker, s.stop)
	return nil
}

func (s *silentSink) run(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			ticker.Stop()
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.playing {
				s.mu.Unlock()
				continue
			}
			s.position += 0.25
			ended := s.duration > 0 && s.position >= s.duration
			onEnded := s.onEnded
			if ended {
				s.playing = false
				s.position = s.duration
			}
			s.mu.Unlock()

			if ended && onEnded != nil {
				onEnded()
			}
		}
	}
}

func (s *silentSink) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.stopClockLocked()
	return nil
}

func (s *silentSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.position = 0
	s.stopClockLocked()
	return nil
}

func (s *silentSink) Seek(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = seconds
	return nil
}

func (s *silentSink) SetVolume(volume float64) error { return nil }

func (s *silentSink) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *silentSink) OnEnded(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnded = fn
}

func (s *silentSink) OnError(fn func(error)) {}

// stopClockLocked halts the ticker goroutine. Caller holds the lock.
func (s *silentSink) stopClockLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
		s.ticker = nil
	}
}
