package player

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/models"
)

// Channel names one of the deck's two playback sources.
type Channel string

const (
	ChannelMusic   Channel = "music"
	ChannelPodcast Channel = "podcast"
)

// Deck pairs a music player with a podcast player and guarantees only one of
// them is ever audible. Starting playback on one channel stops the other;
// transport controls route to whichever channel played last.
type Deck struct {
	mu      sync.Mutex
	music   *Player
	podcast *Player
	active  Channel
	subs    map[chan struct{}]struct{}
}

// NewDeck builds a deck with one player per channel. Nil sinks fall back to
// silent clock sinks.
func NewDeck(musicSink, podcastSink Sink, logger *log.Logger) *Deck {
	d := &Deck{
		music:   NewPlayer(musicSink, logger),
		podcast: NewPlayer(podcastSink, logger),
		active:  ChannelMusic,
		subs:    make(map[chan struct{}]struct{}),
	}

	d.music.SetOnChange(d.broadcast)
	d.podcast.SetOnChange(d.broadcast)
	return d
}

// Channel returns the player backing the named channel.
func (d *Deck) Channel(ch Channel) *Player {
	if ch == ChannelPodcast {
		return d.podcast
	}

	return d.music
}

// Active returns the channel that most recently started playback.
func (d *Deck) Active() Channel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// ActivePlayer returns the player transport controls should address.
func (d *Deck) ActivePlayer() *Player {
	return d.Channel(d.Active())
}

// Play starts a single item on the channel matching its kind, silencing the
// other channel first.
func (d *Deck) Play(item models.Playable) error {
	return d.PlayQueue([]models.Playable{item}, 0)
}

// PlayQueue starts a queue on the channel matching the first item's kind. The
// other channel is stopped before playback begins so only one source is ever
// audible.
func (d *Deck) PlayQueue(items []models.Playable, start int) error {
	if len(items) == 0 {
		return d.music.PlayQueue(items, start)
	}

	ch := ChannelMusic
	if items[0].Kind() == models.KindEpisode {
		ch = ChannelPodcast
	}

	d.activate(ch)
	return d.Channel(ch).PlayQueue(items, start)
}

// activate marks ch as the audible channel and stops its counterpart.
func (d *Deck) activate(ch Channel) {
	d.mu.Lock()
	d.active = ch
	d.mu.Unlock()

	if ch == ChannelMusic {
		d.podcast.Stop()
	} else {
		d.music.Stop()
	}
}

// TogglePlayPause flips the active channel between playing and paused. When
// resuming it re-silences the inactive channel.
func (d *Deck) TogglePlayPause() error {
	p := d.ActivePlayer()

	if !p.Snapshot().Playing {
		d.activate(d.Active())
	}

	return p.TogglePlayPause()
}

// Next advances the active channel's queue.
func (d *Deck) Next() error { return d.ActivePlayer().Next() }

// Previous steps the active channel's queue back.
func (d *Deck) Previous() error { return d.ActivePlayer().Previous() }

// Seek moves the active channel's playhead.
func (d *Deck) Seek(seconds float64) error { return d.ActivePlayer().Seek(seconds) }

// SetVolume sets the level on both channels so switching sources keeps the
// operator's chosen volume.
func (d *Deck) SetVolume(volume float64) error {
	if err := d.music.SetVolume(volume); err != nil {
		return err
	}

	return d.podcast.SetVolume(volume)
}

// AddToQueue appends the item to the queue of the channel matching its kind.
func (d *Deck) AddToQueue(item models.Playable) {
	if item.Kind() == models.KindEpisode {
		d.podcast.AddToQueue(item)
		return
	}

	d.music.AddToQueue(item)
}

// Snapshot returns the active channel's state.
func (d *Deck) Snapshot() State {
	return d.ActivePlayer().Snapshot()
}

// Subscribe returns a channel that receives a signal after any state change
// on either player, plus a cancel function. Signals coalesce; a subscriber
// that has a pending signal does not queue more.
func (d *Deck) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	d.mu.Lock()
	d.subs[ch] = struct{}{}
	d.mu.Unlock()

	cancel := func() {
		d.mu.Lock()
		delete(d.subs, ch)
		d.mu.Unlock()
	}

	return ch, cancel
}

func (d *Deck) broadcast() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for ch := range d.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
