package player

import (
	"io"
	"testing"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
)

func newTestDeck() (*Deck, *fakeSink, *fakeSink) {
	music := &fakeSink{}
	podcast := &fakeSink{}
	return NewDeck(music, podcast, shared.NewLogger(io.Discard)), music, podcast
}

func TestDeck(t *testing.T) {
	t.Run("RoutesTracksToMusicChannel", func(t *testing.T) {
		d, music, podcast := newTestDeck()

		d.Play(track("t1", 180))

		if d.Active() != ChannelMusic {
			t.Errorf("expected music channel active, got %s", d.Active())
		}

		if len(music.loaded) != 1 || len(podcast.loaded) != 0 {
			t.Errorf("expected load on music sink only, got %d/%d", len(music.loaded), len(podcast.loaded))
		}
	})

	t.Run("RoutesEpisodesToPodcastChannel", func(t *testing.T) {
		d, _, podcast := newTestDeck()

		d.Play(episode("e1", 1800))

		if d.Active() != ChannelPodcast {
			t.Errorf("expected podcast channel active, got %s", d.Active())
		}

		if len(podcast.loaded) != 1 {
			t.Errorf("expected load on podcast sink, got %d", len(podcast.loaded))
		}
	})

	t.Run("StartingPodcastSilencesMusic", func(t *testing.T) {
		d, _, _ := newTestDeck()

		d.Play(track("t1", 180))
		d.Play(episode("e1", 1800))

		if d.Channel(ChannelMusic).Snapshot().Playing {
			t.Error("expected music stopped when podcast started")
		}

		if !d.Channel(ChannelPodcast).Snapshot().Playing {
			t.Error("expected podcast playing")
		}
	})

	t.Run("StartingMusicSilencesPodcast", func(t *testing.T) {
		d, _, _ := newTestDeck()

		d.Play(episode("e1", 1800))
		d.Play(track("t1", 180))

		if d.Channel(ChannelPodcast).Snapshot().Playing {
			t.Error("expected podcast stopped when music started")
		}

		if !d.Channel(ChannelMusic).Snapshot().Playing {
			t.Error("expected music playing")
		}
	})

	t.Run("SilencedChannelKeepsItsQueue", func(t *testing.T) {
		d, _, _ := newTestDeck()

		d.PlayQueue(trackQueue(3), 1)
		d.Play(episode("e1", 1800))

		s := d.Channel(ChannelMusic).Snapshot()
		if len(s.Queue) != 3 || s.Index != 1 {
			t.Errorf("expected music queue preserved, got %d items at index %d", len(s.Queue), s.Index)
		}
	})

	t.Run("ResumeReclaimsAudibleOutput", func(t *testing.T) {
		d, _, _ := newTestDeck()

		d.Play(episode("e1", 1800))
		d.Play(track("t1", 180))

		// Pause music, switch back to the podcast, then resume music.
		d.TogglePlayPause()
		d.Play(episode("e2", 900))
		d.PlayQueue([]models.Playable{track("t2", 180)}, 0)

		if d.Channel(ChannelPodcast).Snapshot().Playing {
			t.Error("expected podcast silenced when music reclaimed output")
		}
	})

	t.Run("TransportRoutesToActiveChannel", func(t *testing.T) {
		d, _, _ := newTestDeck()

		d.PlayQueue(trackQueue(3), 0)
		d.Play(episode("e1", 1800))
		d.Next()

		if s := d.Channel(ChannelMusic).Snapshot(); s.Index != 0 {
			t.Errorf("expected music queue untouched, got index %d", s.Index)
		}
	})

	t.Run("SetVolumeAppliesToBothChannels", func(t *testing.T) {
		d, _, _ := newTestDeck()

		d.SetVolume(0.25)

		if v := d.Channel(ChannelMusic).Snapshot().Volume; v != 0.25 {
			t.Errorf("expected music volume 0.25, got %f", v)
		}

		if v := d.Channel(ChannelPodcast).Snapshot().Volume; v != 0.25 {
			t.Errorf("expected podcast volume 0.25, got %f", v)
		}
	})

	t.Run("AddToQueueRoutesByKind", func(t *testing.T) {
		d, _, _ := newTestDeck()

		d.AddToQueue(track("t1", 180))
		d.AddToQueue(episode("e1", 1800))

		if n := len(d.Channel(ChannelMusic).Snapshot().Queue); n != 1 {
			t.Errorf("expected 1 track queued on music, got %d", n)
		}

		if n := len(d.Channel(ChannelPodcast).Snapshot().Queue); n != 1 {
			t.Errorf("expected 1 episode queued on podcast, got %d", n)
		}
	})

	t.Run("SubscribeSignalsOnChange", func(t *testing.T) {
		d, _, _ := newTestDeck()
		ch, cancel := d.Subscribe()
		defer cancel()

		d.Play(track("t1", 180))

		select {
		case <-ch:
		default:
			t.Error("expected a change signal after playback started")
		}
	})
}
