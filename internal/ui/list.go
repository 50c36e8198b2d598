package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
)

// Section identifies a browsable catalog area.
type Section string

const (
	SectionSongs    Section = "Songs"
	SectionAlbums   Section = "Albums"
	SectionPodcasts Section = "Podcasts"
	SectionEpisodes Section = "Episodes"
	SectionLive     Section = "Live Streams"
	SectionUsers    Section = "Users"
	SectionPlans    Section = "Plans"
)

var sections = []Section{
	SectionSongs,
	SectionAlbums,
	SectionPodcasts,
	SectionEpisodes,
	SectionLive,
	SectionUsers,
	SectionPlans,
}

var (
	_ list.Item = sectionItem{}
	_ list.Item = songItem{}
	_ list.Item = albumItem{}
	_ list.Item = podcastItem{}
	_ list.Item = episodeItem{}
	_ list.Item = streamItem{}
	_ list.Item = userItem{}
	_ list.Item = planItem{}
)

// sectionItem wraps a [Section] to implement [list.Item].
type sectionItem struct {
	section Section
}

func (i sectionItem) FilterValue() string { return string(i.section) }
func (i sectionItem) Title() string       { return string(i.section) }
func (i sectionItem) Description() string {
	switch i.section {
	case SectionSongs:
		return "browse and play the track catalog"
	case SectionAlbums:
		return "album releases and their tracklists"
	case SectionPodcasts:
		return "podcast shows"
	case SectionEpisodes:
		return "browse and play podcast episodes"
	case SectionLive:
		return "scheduled and running broadcasts"
	case SectionUsers:
		return "platform accounts"
	case SectionPlans:
		return "subscription plans"
	}
	return ""
}

// songItem wraps [models.Track] to implement [list.Item].
type songItem struct {
	track models.Track
}

func (i songItem) FilterValue() string { return i.track.Title }
func (i songItem) Title() string       { return i.track.Title }
func (i songItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.track.ArtistName, shared.FormatDuration(i.track.Duration))
	if i.track.AlbumTitle != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.AlbumTitle)
	}
	return desc
}

// albumItem wraps [models.Album] to implement [list.Item].
type albumItem struct {
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.Title }
func (i albumItem) Title() string       { return i.album.Title }
func (i albumItem) Description() string {
	return fmt.Sprintf("%s • %d tracks • %s", i.album.ArtistName, i.album.TotalTracks, shared.FormatDuration(i.album.Duration))
}

// podcastItem wraps [models.Podcast] to implement [list.Item].
type podcastItem struct {
	podcast models.Podcast
}

func (i podcastItem) FilterValue() string { return i.podcast.Title }
func (i podcastItem) Title() string       { return i.podcast.Title }
func (i podcastItem) Description() string {
	return fmt.Sprintf("%s • %d episodes", i.podcast.ArtistName, i.podcast.TotalEpisodes)
}

// episodeItem wraps [models.Episode] to implement [list.Item].
type episodeItem struct {
	episode models.Episode
}

func (i episodeItem) FilterValue() string { return i.episode.Title }
func (i episodeItem) Title() string       { return i.episode.Title }
func (i episodeItem) Description() string {
	desc := fmt.Sprintf("#%d • %s", i.episode.EpisodeNumber, shared.FormatDuration(i.episode.Duration))
	if i.episode.PodcastTitle != "" {
		desc = fmt.Sprintf("%s • %s", i.episode.PodcastTitle, desc)
	}
	return desc
}

// streamItem wraps [models.LiveStream] to implement [list.Item].
type streamItem struct {
	stream models.LiveStream
}

func (i streamItem) FilterValue() string { return i.stream.Title }
func (i streamItem) Title() string       { return i.stream.Title }
func (i streamItem) Description() string {
	if i.stream.Status == models.LiveRunning {
		return fmt.Sprintf("%s • LIVE • %d listening", i.stream.ArtistName, i.stream.ListenerCount)
	}
	return fmt.Sprintf("%s • %s", i.stream.ArtistName, i.stream.Status)
}

// userItem wraps [models.User] to implement [list.Item].
type userItem struct {
	user models.User
}

func (i userItem) FilterValue() string { return i.user.DisplayName() }
func (i userItem) Title() string       { return i.user.DisplayName() }
func (i userItem) Description() string {
	state := "active"
	if !i.user.IsActive {
		state = "inactive"
	}
	return fmt.Sprintf("%s • %s • %s", i.user.Email, i.user.Role, state)
}

// planItem wraps [models.SubscriptionPlan] to implement [list.Item].
type planItem struct {
	plan models.SubscriptionPlan
}

func (i planItem) FilterValue() string { return i.plan.Name }
func (i planItem) Title() string       { return i.plan.Name }
func (i planItem) Description() string {
	return fmt.Sprintf("%.2f %s • %d days", i.plan.Price, i.plan.Currency, i.plan.DurationDays)
}
