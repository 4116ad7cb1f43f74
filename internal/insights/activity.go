package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tastytalk/admin-backend/internal/models"
)

// MaxActivityItems is the length of the dashboard activity feed.
const MaxActivityItems = 6

// UnknownDish is shown when no dish name can be read from a notification message.
const UnknownDish = "Unknown"

// Feed icons (Font Awesome class names)
const (
	IconUpdated = "fa-pencil-alt"
	IconAdded   = "fa-plus"
	IconGeneric = "fa-bullhorn"
)

// ActivityItem is one row of the dashboard's recent activity feed
type ActivityItem struct {
	Title     string
	DishName  string
	Label     string
	Icon      string
	TimeAgo   string
	Timestamp time.Time
}

type activityKey struct {
	title string
	dish  string
}

// RecentActivity builds the dashboard feed from raw notifications.
// Notifications are fanned out one per user, so the same announcement appears many
// times; rows sharing a title and dish name collapse into the most recent one.
func RecentActivity(notifications []models.Notification, now time.Time) []ActivityItem {
	sorted := make([]models.Notification, len(notifications))
	copy(sorted, notifications)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	seen := make(map[activityKey]struct{})
	items := make([]ActivityItem, 0, MaxActivityItems)
	for _, n := range sorted {
		dish := DishNameFromMessage(n.Message)
		key := activityKey{title: n.Title, dish: dish}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		icon, label := describe(n.Title, dish)
		items = append(items, ActivityItem{
			Title:     n.Title,
			DishName:  dish,
			Label:     label,
			Icon:      icon,
			TimeAgo:   TimeAgo(n.Timestamp, now),
			Timestamp: n.Timestamp,
		})
		if len(items) == MaxActivityItems {
			break
		}
	}
	return items
}

// DishNameFromMessage reads the dish name embedded in a notification message:
// the text after the first colon, else the first double-quoted substring.
func DishNameFromMessage(message string) string {
	if _, after, ok := strings.Cut(message, ":"); ok {
		if name := strings.TrimSpace(after); name != "" {
			return name
		}
	}
	if _, rest, ok := strings.Cut(message, `"`); ok {
		if quoted, _, ok := strings.Cut(rest, `"`); ok && quoted != "" {
			return quoted
		}
	}
	return UnknownDish
}

// TimeAgo renders the distance between t and now in whole days, hours or minutes.
// The smallest value reported is one minute.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d >= 24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	}
	minutes := int(d / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return plural(minutes, "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func describe(title, dish string) (icon, label string) {
	switch {
	case strings.Contains(title, "Updated"):
		return IconUpdated, "Updated dish: " + dish
	case strings.Contains(title, "Added"):
		return IconAdded, "Added dish: " + dish
	default:
		return IconGeneric, title
	}
}
