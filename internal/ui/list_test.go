package ui

import (
	"strings"
	"testing"

	"github.com/sonatafm/podium/internal/models"
)

func TestListItems(t *testing.T) {
	t.Run("SongItem", func(t *testing.T) {
		item := songItem{track: models.Track{Title: "First Light", ArtistName: "The Meridian", AlbumTitle: "Daybreak", Duration: 185}}

		if item.Title() != "First Light" {
			t.Errorf("unexpected title %q", item.Title())
		}
		desc := item.Description()
		if !strings.Contains(desc, "3:05") || !strings.Contains(desc, "Daybreak") {
			t.Errorf("unexpected description %q", desc)
		}
	})

	t.Run("StreamItemShowsListenersWhenLive", func(t *testing.T) {
		running := streamItem{stream: models.LiveStream{Title: "Rooftop", ArtistName: "The Meridian", Status: models.LiveRunning, ListenerCount: 12}}
		if !strings.Contains(running.Description(), "LIVE") {
			t.Errorf("expected LIVE marker, got %q", running.Description())
		}

		scheduled := streamItem{stream: models.LiveStream{Title: "Rooftop", Status: models.LiveScheduled}}
		if strings.Contains(scheduled.Description(), "LIVE") {
			t.Errorf("did not expect LIVE marker, got %q", scheduled.Description())
		}
	})

	t.Run("PlayableFrom", func(t *testing.T) {
		if _, ok := playableFrom(songItem{}); !ok {
			t.Error("expected songs to be playable")
		}
		if _, ok := playableFrom(episodeItem{}); !ok {
			t.Error("expected episodes to be playable")
		}
		if _, ok := playableFrom(albumItem{}); ok {
			t.Error("albums are browsed, not played directly")
		}
		if _, ok := playableFrom(userItem{}); ok {
			t.Error("users are never playable")
		}
	})
}
