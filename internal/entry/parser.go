package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// clockRangePattern matches a clock range in HH:MM-HH:MM format (e.g., "09:03-09:58")
var clockRangePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})$`)

// ParseClock parses a HH:MM clock value and returns the minutes since midnight.
// "24:00" is accepted so an entry can run up to the end of the day.
func ParseClock(input string) (int, error) {
	parts := strings.Split(input, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock time: expected HH:MM, got %s", input)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time: expected HH:MM, got %s", input)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time: expected HH:MM, got %s", input)
	}

	if mins > 59 || hours > 24 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("invalid clock time: %s is out of range (00:00-24:00)", input)
	}

	return hours*60 + mins, nil
}

// IsClockRange reports whether the input looks like a HH:MM-HH:MM range
func IsClockRange(input string) bool {
	return clockRangePattern.MatchString(input)
}

// ParseClockRange parses a clock range in HH:MM-HH:MM format and places it on the
// calendar day of the given time, in that time's location.
// Valid inputs: "09:00-10:30", "9:15-12:00", "22:00-24:00"
// Invalid inputs: "10:00-09:00", "09:00-09:00", "9-10", "25:00-26:00"
func ParseClockRange(input string, day time.Time) (start, end time.Time, err error) {
	matches := clockRangePattern.FindStringSubmatch(input)
	if matches == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time range: expected HH:MM-HH:MM, got %s", input)
	}

	startMinutes, err := ParseClock(matches[1] + ":" + matches[2])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMinutes, err := ParseClock(matches[3] + ":" + matches[4])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if endMinutes <= startMinutes {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time range: end %s:%s must be after start %s:%s",
			matches[3], matches[4], matches[1], matches[2])
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	start = midnight.Add(time.Duration(startMinutes) * time.Minute)
	end = midnight.Add(time.Duration(endMinutes) * time.Minute)
	return start, end, nil
}

// phasePattern matches @phase syntax (e.g., "@acme-support", "@phase_2")
// Phase ids can contain alphanumeric characters, hyphens, underscores and dots
var phasePattern = regexp.MustCompile(`@([a-zA-Z0-9_.-]+)`)

// worktypePattern matches #worktype syntax (e.g., "#dev", "#meeting")
var worktypePattern = regexp.MustCompile(`#([a-zA-Z0-9_.-]+)`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// ParsePhaseAndWorktype extracts @phase and #worktype from a description string.
// Returns the cleaned description (without the tokens), the phase id and the worktype id.
// If several tokens of the same kind are found, the last one wins.
// Example: "fix login @acme-dev #dev" -> ("fix login", "acme-dev", "dev")
func ParsePhaseAndWorktype(description string) (cleanDesc, phaseID, worktypeID string) {
	if matches := phasePattern.FindAllStringSubmatch(description, -1); len(matches) > 0 {
		phaseID = matches[len(matches)-1][1]
	}
	if matches := worktypePattern.FindAllStringSubmatch(description, -1); len(matches) > 0 {
		worktypeID = matches[len(matches)-1][1]
	}

	cleanDesc = phasePattern.ReplaceAllString(description, "")
	cleanDesc = worktypePattern.ReplaceAllString(cleanDesc, "")
	cleanDesc = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleanDesc, " "))

	return cleanDesc, phaseID, worktypeID
}

// FormatRawInput rebuilds the user-facing input string for an entry
func FormatRawInput(description, phaseID, worktypeID string, start, end time.Time) string {
	var b strings.Builder
	b.WriteString(description)
	if phaseID != "" {
		b.WriteString(" @" + phaseID)
	}
	if worktypeID != "" {
		b.WriteString(" #" + worktypeID)
	}
	b.WriteString(" " + start.Format("15:04") + "-" + formatEnd(start, end))
	return b.String()
}

func formatEnd(start, end time.Time) string {
	if end.Day() != start.Day() && end.Hour() == 0 && end.Minute() == 0 {
		return "24:00"
	}
	return end.Format("15:04")
}
