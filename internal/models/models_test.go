package models

import (
	"errors"
	"testing"
	"time"
)

func TestPlayable(t *testing.T) {
	t.Run("Track", func(t *testing.T) {
		track := Track{
			TrackID:   "tr1",
			Title:     "Night Drive",
			AudioFile: "https://cdn.sonata.fm/audio/tr1.mp3",
			Duration:  214,
		}

		var p Playable = track
		if p.PlayableID() != "tr1" {
			t.Errorf("expected playable ID tr1, got %s", p.PlayableID())
		}
		if p.Kind() != KindTrack {
			t.Errorf("expected kind track, got %s", p.Kind())
		}
		if p.PlayableDuration() != 214 {
			t.Errorf("expected duration 214, got %d", p.PlayableDuration())
		}
	})

	t.Run("Episode", func(t *testing.T) {
		episode := Episode{
			EpisodeID: "ep1",
			Title:     "Pilot",
			AudioFile: "https://cdn.sonata.fm/audio/ep1.mp3",
			Duration:  1800,
		}

		var p Playable = episode
		if p.Kind() != KindEpisode {
			t.Errorf("expected kind episode, got %s", p.Kind())
		}
	})
}

func TestCoverFallback(t *testing.T) {
	album := Album{AlbumID: "al1", Title: "Test"}
	if album.Cover() != DefaultCoverURL {
		t.Errorf("expected placeholder cover, got %s", album.Cover())
	}

	album.CoverURL = "https://cdn.sonata.fm/covers/al1.jpg"
	if album.Cover() != album.CoverURL {
		t.Errorf("expected explicit cover, got %s", album.Cover())
	}

	track := Track{}
	if track.Cover() != DefaultCoverURL {
		t.Errorf("expected placeholder cover for track, got %s", track.Cover())
	}
}

func TestEnums(t *testing.T) {
	t.Run("Role", func(t *testing.T) {
		for _, role := range []Role{RoleUser, RoleArtist, RoleAdmin, RoleSuperAdmin} {
			if !role.Valid() {
				t.Errorf("expected role %s to be valid", role)
			}
		}
		if Role("moderator").Valid() {
			t.Error("expected unknown role to be invalid")
		}
	})

	t.Run("SubscriptionStatus", func(t *testing.T) {
		for _, status := range []SubscriptionStatus{SubscriptionActive, SubscriptionCancelled, SubscriptionExpired, SubscriptionPending} {
			if !status.Valid() {
				t.Errorf("expected status %s to be valid", status)
			}
		}
		if SubscriptionStatus("paused").Valid() {
			t.Error("expected unknown status to be invalid")
		}
	})
}

func TestUploadValidation(t *testing.T) {
	t.Run("TrackUpload", func(t *testing.T) {
		upload := TrackUpload{Title: "Song", ArtistID: "ar1", Duration: 200}
		if err := upload.Validate(); err != nil {
			t.Errorf("expected valid upload, got %v", err)
		}

		upload.Title = ""
		if err := upload.Validate(); !errors.Is(err, ErrMissingField) {
			t.Errorf("expected missing field error, got %v", err)
		}

		upload = TrackUpload{Title: "Song", ArtistID: "ar1", Duration: -1}
		if err := upload.Validate(); !errors.Is(err, ErrInvalidField) {
			t.Errorf("expected invalid field error, got %v", err)
		}
	})

	t.Run("PlanUpload", func(t *testing.T) {
		upload := PlanUpload{Name: "Premium", Price: 9.99, DurationDays: 30}
		if err := upload.Validate(); err != nil {
			t.Errorf("expected valid plan, got %v", err)
		}

		upload.DurationDays = 0
		if err := upload.Validate(); !errors.Is(err, ErrInvalidField) {
			t.Errorf("expected invalid field error, got %v", err)
		}
	})

	t.Run("UserUpdate", func(t *testing.T) {
		bad := Role("owner")
		update := UserUpdate{Role: &bad}
		if err := update.Validate(); err == nil {
			t.Error("expected error for unknown role")
		}
	})
}

func TestSnapshot(t *testing.T) {
	snap := NewSnapshot(0, "catalog", "/tmp/dump.json", 42, time.Now().UTC())

	if err := snap.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected missing id error before SetID, got %v", err)
	}

	snap.SetID("abc")
	snap.SetSequence(7)
	if err := snap.Validate(); err != nil {
		t.Errorf("expected valid snapshot, got %v", err)
	}
	if snap.Sequence() != 7 {
		t.Errorf("expected sequence 7, got %d", snap.Sequence())
	}
}
