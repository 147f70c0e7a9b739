package chat

import (
	"fmt"
	"sort"
	"time"
)

// FeedItemType discriminates the two projection units
type FeedItemType string

// Feed item types
const (
	FeedItemMessage   FeedItemType = "message"
	FeedItemSeparator FeedItemType = "separator"
)

// invalidDateLabel is the sentinel for messages whose timestamp cannot
// be mapped to a calendar date. Sentinel-labeled runs never emit
// separators.
const invalidDateLabel = "Invalid Date"

// FeedItem is a display-only projection unit: either a message or a
// date separator. It is recomputed wholesale on every store change and
// never mutated in place.
type FeedItem struct {
	Type      FeedItemType
	ID        string
	DateLabel string
	Message   Message
}

// Project derives the display sequence from a conversation snapshot:
// hidden system turns are filtered out, messages are stable-sorted by
// timestamp, and a separator is emitted whenever the calendar-date
// label changes. Pure and deterministic for a fixed (messages, now).
func Project(messages []Message, now time.Time) []FeedItem {
	if len(messages) == 0 {
		return nil
	}

	displayable := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == RoleSystem && !msg.IsError() {
			continue
		}
		displayable = append(displayable, msg)
	}

	// Insertion order is chronological today, but the sort stays
	// explicit and stable so out-of-order completions cannot scramble
	// the feed.
	sort.SliceStable(displayable, func(i, j int) bool {
		return displayable[i].Timestamp.Before(displayable[j].Timestamp)
	})

	items := make([]FeedItem, 0, len(displayable)*2)
	lastLabel := ""
	for i, msg := range displayable {
		label := DateLabel(msg.Timestamp, now)
		if label != lastLabel && label != invalidDateLabel {
			items = append(items, FeedItem{
				Type:      FeedItemSeparator,
				ID:        fmt.Sprintf("sep-%s-%d", label, i),
				DateLabel: label,
			})
			// Advance only on emission so a sentinel run between two
			// same-day messages cannot force a duplicate separator.
			lastLabel = label
		}

		items = append(items, FeedItem{
			Type:    FeedItemMessage,
			ID:      msg.ID,
			Message: msg,
		})
	}

	return items
}

// DateLabel maps a message timestamp to its separator label: "Today",
// "Yesterday", or a long-form calendar date. Comparison is by calendar
// date, not timestamp.
func DateLabel(ts, now time.Time) string {
	if ts.IsZero() {
		return invalidDateLabel
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	msgDay := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case msgDay.Equal(today):
		return "Today"
	case msgDay.Equal(yesterday):
		return "Yesterday"
	default:
		return ts.Format("January 2, 2006")
	}
}
