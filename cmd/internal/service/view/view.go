// Package view holds the list shaping the note board applies on top of what
// the store returns. None of it is a storage rule.
package view

import (
	"slices"
	"stickynotes/cmd/internal/contract"
	"strings"
)

// SortPinnedFirst moves pinned notes ahead of the rest, keeping the relative
// order inside each group. notes is sorted in place and returned.
func SortPinnedFirst(notes []*contract.NoteResponse) []*contract.NoteResponse {
	slices.SortStableFunc(notes, func(a, b *contract.NoteResponse) int {
		switch {
		case a.IsPinned == b.IsPinned:
			return 0
		case a.IsPinned:
			return -1
		default:
			return 1
		}
	})
	return notes
}

// TagSet collapses the tags of every note into a sorted set.
func TagSet(notes []*contract.NoteResponse) []string {
	seen := make(map[string]struct{})
	for _, note := range notes {
		for _, tag := range note.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// FilterByTag keeps the notes tagged with tag. An empty tag keeps everything.
func FilterByTag(notes []*contract.NoteResponse, tag string) []*contract.NoteResponse {
	if tag == "" {
		return notes
	}

	out := make([]*contract.NoteResponse, 0, len(notes))
	for _, note := range notes {
		if slices.Contains(note.Tags, tag) {
			out = append(out, note)
		}
	}
	return out
}

// Search keeps the notes whose title, content or tags contain query,
// ignoring case.
func Search(notes []*contract.NoteResponse, query string) []*contract.NoteResponse {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return notes
	}

	out := make([]*contract.NoteResponse, 0, len(notes))
	for _, note := range notes {
		if matches(note, query) {
			out = append(out, note)
		}
	}
	return out
}

func matches(note *contract.NoteResponse, query string) bool {
	if strings.Contains(strings.ToLower(note.Title), query) ||
		strings.Contains(strings.ToLower(note.Content), query) {
		return true
	}

	return slices.ContainsFunc(note.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), query)
	})
}
