// Package player implements the operator console's playback deck: two
// players, one for music and one for podcasts, sharing a single audible
// output. Queue and transport semantics live in [Player]; source exclusivity
// lives in [Deck].
package player

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
)

// State is a point-in-time copy of a player's observable state.
type State struct {
	Current  models.Playable
	Playing  bool
	Position float64
	Duration float64
	Volume   float64
	Queue    []models.Playable
	Index    int
	Err      error
}

// Player owns a playback queue and drives a [Sink]. All methods are safe for
// concurrent use. The queue index is -1 exactly when the queue is empty;
// whenever the queue holds items the index points at a valid slot.
type Player struct {
	mu       sync.Mutex
	sink     Sink
	logger   *log.Logger
	onChange func()

	current  models.Playable
	playing  bool
	position float64
	duration float64
	volume   float64
	queue    []models.Playable
	index    int
	lastErr  error
}

// NewPlayer wires a player to a sink. A nil sink gets a silent clock sink and
// a nil logger a default one.
func NewPlayer(sink Sink, logger *log.Logger) *Player {
	if sink == nil {
		sink = NewSilentSink()
	}

	if logger == nil {
		logger = shared.NewLogger(os.Stderr)
	}

	p := &Player{sink: sink, logger: logger, volume: 0.8, index: -1}
	sink.OnEnded(p.handleEnded)
	sink.OnError(p.handleError)
	return p
}

// SetOnChange registers a hook invoked after every state transition. The hook
// runs without the player lock held.
func (p *Player) SetOnChange(fn func()) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Play replaces the queue with a single item and starts it.
func (p *Player) Play(item models.Playable) error {
	return p.PlayQueue([]models.Playable{item}, 0)
}

// PlayQueue replaces the queue and starts playback at the given index. An
// out-of-range start is reported as [shared.ErrInvalidIndex] and playback
// begins at the head of the queue instead.
func (p *Player) PlayQueue(items []models.Playable, start int) error {
	if len(items) == 0 {
		return shared.ErrEmptyQueue
	}

	var indexErr error
	if start < 0 || start >= len(items) {
		p.logger.Warn("queue start out of range, clamping to head", "start", start, "length", len(items))

		indexErr = fmt.Errorf("%w: start %d for queue of %d", shared.ErrInvalidIndex, start, len(items))
		start = 0
	}

	p.mu.Lock()
	p.queue = append([]models.Playable(nil), items...)
	p.index = start
	err := p.loadAndPlayLocked()
	p.mu.Unlock()

	p.notify()

	if err != nil {
		return err
	}

	return indexErr
}

// loadAndPlayLocked points the sink at queue[index] and starts it. Caller
// holds the lock and guarantees the index is valid.
func (p *Player) loadAndPlayLocked() error {
	item := p.queue[p.index]
	p.current = item
	p.position = 0
	p.duration = float64(item.PlayableDuration())
	p.lastErr = nil

	if err := p.sink.Load(item.AudioURL(), p.duration); err != nil {
		p.playing = false
		p.lastErr = fmt.Errorf("%w: %s: %w", shared.ErrMediaLoad, item.PlayableTitle(), err)
		p.logger.Error("failed to load media", "id", item.PlayableID(), "error", err)
		return p.lastErr
	}

	if err := p.sink.SetVolume(p.volume); err != nil {
		p.logger.Warn("failed to set volume on sink", "error", err)
	}

	if err := p.sink.Play(); err != nil {
		p.playing = false
		p.lastErr = fmt.Errorf("%w: %s: %w", shared.ErrMediaLoad, item.PlayableTitle(), err)
		return p.lastErr
	}

	p.playing = true
	return nil
}

// TogglePlayPause flips between playing and paused. A no-op when nothing is
// loaded.
func (p *Player) TogglePlayPause() error {
	p.mu.Lock()

	if p.current == nil {
		p.mu.Unlock()
		return nil
	}

	var err error
	if p.playing {
		err = p.sink.Pause()
		p.playing = false
	} else {
		err = p.sink.Play()
		p.playing = true
	}

	p.mu.Unlock()
	p.notify()
	return err
}

// Next advances to the following queue item. At the tail it stops playback
// and stays put; the queue never wraps around.
func (p *Player) Next() error {
	p.mu.Lock()

	if p.index < 0 {
		p.mu.Unlock()
		return nil
	}

	if p.index >= len(p.queue)-1 {
		p.playing = false
		p.position = p.duration
		err := p.sink.Pause()
		p.mu.Unlock()
		p.notify()
		return err
	}

	p.index++
	err := p.loadAndPlayLocked()
	p.mu.Unlock()
	p.notify()
	return err
}

// Previous steps back to the prior queue item. A no-op at the head.
func (p *Player) Previous() error {
	p.mu.Lock()

	if p.index <= 0 {
		p.mu.Unlock()
		return nil
	}

	p.index--
	err := p.loadAndPlayLocked()
	p.mu.Unlock()
	p.notify()
	return err
}

// Seek moves the playhead, clamped to [0, duration].
func (p *Player) Seek(seconds float64) error {
	p.mu.Lock()

	if p.current == nil {
		p.mu.Unlock()
		return nil
	}

	if seconds < 0 {
		seconds = 0
	}

	if seconds > p.duration {
		seconds = p.duration
	}

	p.position = seconds
	err := p.sink.Seek(seconds)
	p.mu.Unlock()
	p.notify()
	return err
}

// SetVolume sets the output level, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) error {
	if volume < 0 {
		volume = 0
	}

	if volume > 1 {
		volume = 1
	}

	p.mu.Lock()
	p.volume = volume
	err := p.sink.SetVolume(volume)
	p.mu.Unlock()
	p.notify()
	return err
}

// AddToQueue appends an item. On an empty deck the item becomes current
// without starting playback.
func (p *Player) AddToQueue(item models.Playable) {
	p.mu.Lock()
	p.queue = append(p.queue, item)

	if p.index < 0 {
		p.index = 0
		p.current = item
		p.duration = float64(item.PlayableDuration())
		p.position = 0
	}

	p.mu.Unlock()
	p.notify()
}

// RemoveFromQueue drops the item at i. Out-of-range indices are ignored.
// Removing the playing slot hands playback to the item that takes its place,
// or clears the player when the queue empties.
func (p *Player) RemoveFromQueue(i int) error {
	p.mu.Lock()

	if i < 0 || i >= len(p.queue) {
		p.logger.Warn("remove index out of range, ignoring", "index", i, "length", len(p.queue))
		p.mu.Unlock()
		return nil
	}

	removingCurrent := i == p.index
	p.queue = append(p.queue[:i], p.queue[i+1:]...)

	var err error
	switch {
	case len(p.queue) == 0:
		p.clearLocked()
	case removingCurrent:
		if p.index >= len(p.queue) {
			p.index = len(p.queue) - 1
		}

		wasPlaying := p.playing
		err = p.loadAndPlayLocked()
		if err == nil && !wasPlaying {
			p.playing = false
			err = p.sink.Pause()
		}
	case i < p.index:
		p.index--
	}

	p.mu.Unlock()
	p.notify()
	return err
}

// ClearQueue stops playback and empties the queue.
func (p *Player) ClearQueue() error {
	p.mu.Lock()
	p.clearLocked()
	err := p.sink.Stop()
	p.mu.Unlock()
	p.notify()
	return err
}

func (p *Player) clearLocked() {
	p.queue = nil
	p.index = -1
	p.current = nil
	p.playing = false
	p.position = 0
	p.duration = 0
	p.lastErr = nil
}

// Stop pauses playback without touching the queue.
func (p *Player) Stop() error {
	p.mu.Lock()

	if !p.playing {
		p.mu.Unlock()
		return nil
	}

	p.playing = false
	err := p.sink.Pause()
	p.mu.Unlock()
	p.notify()
	return err
}

// Snapshot returns a copy of the player state. The queue slice is copied and
// position is refreshed from the sink when playing.
func (p *Player) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		p.position = p.sink.Position()
	}

	return State{
		Current:  p.current,
		Playing:  p.playing,
		Position: p.position,
		Duration: p.duration,
		Volume:   p.volume,
		Queue:    append([]models.Playable(nil), p.queue...),
		Index:    p.index,
		Err:      p.lastErr,
	}
}

// handleEnded auto-advances when the sink reports end of media.
func (p *Player) handleEnded() {
	p.mu.Lock()

	if p.index < 0 {
		p.mu.Unlock()
		return
	}

	if p.index >= len(p.queue)-1 {
		p.playing = false
		p.position = p.duration
		p.mu.Unlock()
		p.notify()
		return
	}

	p.index++
	err := p.loadAndPlayLocked()
	p.mu.Unlock()

	if err != nil {
		p.logger.Error("failed to advance after track ended", "error", err)
	}

	p.notify()
}

// handleError records a sink failure as the player's error state.
func (p *Player) handleError(err error) {
	p.mu.Lock()
	p.playing = false
	p.lastErr = fmt.Errorf("%w: %w", shared.ErrMediaLoad, err)
	p.mu.Unlock()

	p.logger.Error("playback error", "error", err)
	p.notify()
}

func (p *Player) notify() {
	p.mu.Lock()
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}
