// package formatter renders catalog listings as aligned text tables, CSV and JSON for console output
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/shared"
)

const titleWidth = 40

// Table renders headers and rows as a plain text table with columns padded
// to the widest cell.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var buf strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				buf.WriteString("  ")
			}
			buf.WriteString(cell)
			if pad := widths[i] - len([]rune(cell)); pad > 0 && i < len(cells)-1 {
				buf.WriteString(strings.Repeat(" ", pad))
			}
		}
		buf.WriteString("\n")
	}

	writeRow(headers)
	rule := make([]string, len(headers))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)
	for _, row := range rows {
		writeRow(row)
	}
	return buf.String()
}

// SongTable renders tracks with duration, play count and publish state.
func SongTable(tracks []models.Track) string {
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, []string{
			t.TrackID,
			shared.Truncate(t.Title, titleWidth),
			shared.Truncate(t.ArtistName, titleWidth),
			shared.Truncate(t.AlbumTitle, titleWidth),
			shared.FormatDuration(t.Duration),
			strconv.Itoa(t.PlayCount),
			yesNo(t.IsPublished),
		})
	}
	return Table([]string{"ID", "TITLE", "ARTIST", "ALBUM", "LENGTH", "PLAYS", "PUBLISHED"}, rows)
}

// AlbumTable renders albums with track counts and total runtime.
func AlbumTable(albums []models.Album) string {
	rows := make([][]string, 0, len(albums))
	for _, a := range albums {
		rows = append(rows, []string{
			a.AlbumID,
			shared.Truncate(a.Title, titleWidth),
			shared.Truncate(a.ArtistName, titleWidth),
			a.Genre,
			strconv.Itoa(a.TotalTracks),
			shared.FormatDuration(a.Duration),
			yesNo(a.IsPublished),
		})
	}
	return Table([]string{"ID", "TITLE", "ARTIST", "GENRE", "TRACKS", "LENGTH", "PUBLISHED"}, rows)
}

// ArtistTable renders artist profiles with verification state.
func ArtistTable(artists []models.Artist) string {
	rows := make([][]string, 0, len(artists))
	for _, a := range artists {
		rows = append(rows, []string{
			a.ArtistID,
			shared.Truncate(a.StageName, titleWidth),
			a.UserID,
			yesNo(a.Verified),
		})
	}
	return Table([]string{"ID", "STAGE NAME", "USER", "VERIFIED"}, rows)
}

// UserTable renders platform accounts with role and activity state.
func UserTable(users []models.User) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.UserID,
			shared.Truncate(u.DisplayName(), titleWidth),
			shared.Truncate(u.Email, titleWidth),
			string(u.Role),
			yesNo(u.IsActive),
		})
	}
	return Table([]string{"ID", "NAME", "EMAIL", "ROLE", "ACTIVE"}, rows)
}

// PodcastTable renders shows with their episode counts.
func PodcastTable(podcasts []models.Podcast) string {
	rows := make([][]string, 0, len(podcasts))
	for _, p := range podcasts {
		rows = append(rows, []string{
			p.PodcastID,
			shared.Truncate(p.Title, titleWidth),
			shared.Truncate(p.ArtistName, titleWidth),
			p.Category,
			strconv.Itoa(p.TotalEpisodes),
			yesNo(p.IsPublished),
		})
	}
	return Table([]string{"ID", "TITLE", "HOST", "CATEGORY", "EPISODES", "PUBLISHED"}, rows)
}

// EpisodeTable renders episodes with their number, runtime and listens.
func EpisodeTable(episodes []models.Episode) string {
	rows := make([][]string, 0, len(episodes))
	for _, e := range episodes {
		rows = append(rows, []string{
			e.EpisodeID,
			strconv.Itoa(e.EpisodeNumber),
			shared.Truncate(e.Title, titleWidth),
			shared.FormatDuration(e.Duration),
			strconv.Itoa(e.PlayCount),
			yesNo(e.IsPublished),
		})
	}
	return Table([]string{"ID", "#", "TITLE", "LENGTH", "PLAYS", "PUBLISHED"}, rows)
}

// LiveStreamTable renders broadcasts with status and listener counts.
func LiveStreamTable(streams []models.LiveStream) string {
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		rows = append(rows, []string{
			s.StreamID,
			shared.Truncate(s.Title, titleWidth),
			shared.Truncate(s.ArtistName, titleWidth),
			string(s.Status),
			strconv.Itoa(s.ListenerCount),
			shortTime(s.ScheduledAt),
		})
	}
	return Table([]string{"ID", "TITLE", "ARTIST", "STATUS", "LISTENERS", "SCHEDULED"}, rows)
}

// PlanTable renders subscription plans with pricing and feature flags.
func PlanTable(plans []models.SubscriptionPlan) string {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			p.PlanID,
			shared.Truncate(p.Name, titleWidth),
			fmt.Sprintf("%.2f %s", p.Price, p.Currency),
			strconv.Itoa(p.DurationDays) + "d",
			yesNo(p.AdsFree),
			yesNo(p.IsActive),
		})
	}
	return Table([]string{"ID", "NAME", "PRICE", "TERM", "AD-FREE", "ACTIVE"}, rows)
}

// SubscriptionTable renders user subscriptions with status and date range.
func SubscriptionTable(subs []models.Subscription) string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{
			s.SubscriptionID,
			s.UserID,
			shared.Truncate(s.PlanName, titleWidth),
			string(s.Status),
			shortDate(s.StartsAt),
			shortDate(s.EndsAt),
		})
	}
	return Table([]string{"ID", "USER", "PLAN", "STATUS", "STARTS", "ENDS"}, rows)
}

// SnapshotTable renders recorded catalog snapshots.
func SnapshotTable(snapshots []*models.Snapshot) string {
	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			strconv.Itoa(s.Sequence()),
			s.ID(),
			s.Kind(),
			strconv.Itoa(s.ResourceCount()),
			shortTime(s.TakenAt()),
			s.Path(),
		})
	}
	return Table([]string{"SEQ", "ID", "KIND", "ITEMS", "TAKEN", "PATH"}, rows)
}

// SongsToCSV converts tracks to CSV with columns: ID, Title, Artist, Album, Duration, Plays
func SongsToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "Plays"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.TrackID,
			track.Title,
			track.ArtistName,
			track.AlbumTitle,
			strconv.Itoa(track.Duration),
			strconv.Itoa(track.PlayCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToJSON renders any value as indented JSON for console output.
func ToJSON(v any) ([]byte, error) {
	return shared.MarshalJSON(v, true)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func shortTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
