package prompt

import "strings"

// Selection is a user-chosen filter combination applied against a prompt
// in-process, as opposed to ListFilter which is pushed down to the store.
type Selection struct {
	PrimaryCategory string
	Style           []string
	Pose            []string
	Background      []string
	God             string
}

// IsEmpty reports whether no filter is selected.
func (s Selection) IsEmpty() bool {
	return s.PrimaryCategory == "" &&
		len(s.Style) == 0 &&
		len(s.Pose) == 0 &&
		len(s.Background) == 0 &&
		s.God == ""
}

// MatchesFilters reports whether a prompt satisfies a filter selection.
//
// Primary category is strict: when selected it must match exactly, with no
// fallback. Style, pose and background are loose on purpose: a selected value
// also matches when it appears as a substring of a tag, the title, or the
// description, compensating for incomplete tagging. This approximate matching
// can produce false positives (a style keyword occurring incidentally in a
// description) and is kept as the documented listing behavior.
func MatchesFilters(p *Prompt, sel Selection) bool {
	if sel.IsEmpty() {
		return true
	}

	if sel.PrimaryCategory != "" && p.Filters.PrimaryCategory != sel.PrimaryCategory {
		return false
	}

	if len(sel.Style) > 0 {
		if !anyMatches(sel.Style, func(style string) bool {
			return contains(p.Filters.Style, style) ||
				tagContains(p.Tags, style) ||
				strings.Contains(strings.ToLower(p.Title), strings.ToLower(style))
		}) {
			return false
		}
	}

	if len(sel.Pose) > 0 {
		if !anyMatches(sel.Pose, func(pose string) bool {
			return contains(p.Filters.Pose, pose) ||
				tagContains(p.Tags, pose) ||
				strings.Contains(strings.ToLower(p.Description), strings.ToLower(pose))
		}) {
			return false
		}
	}

	if len(sel.Background) > 0 {
		if !anyMatches(sel.Background, func(bg string) bool {
			spaced := strings.ReplaceAll(strings.ToLower(bg), "-", " ")
			return contains(p.Filters.Background, bg) ||
				strings.Contains(strings.ToLower(p.Description), spaced)
		}) {
			return false
		}
	}

	// God only applies under the with-god primary category, with a description
	// text fallback.
	if sel.God != "" && sel.PrimaryCategory == "with-god" {
		if p.Filters.God != sel.God {
			godName := strings.ReplaceAll(strings.ToLower(sel.God), "-", " ")
			if !strings.Contains(strings.ToLower(p.Description), godName) {
				return false
			}
		}
	}

	return true
}

func anyMatches(values []string, match func(string) bool) bool {
	for _, v := range values {
		if match(v) {
			return true
		}
	}
	return false
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func tagContains(tags []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
