// Package notify renders human-readable schedule descriptions from
// raymond templates: a small Parse/Render wrapper around
// github.com/luthersystems/raymond plus helpers for formatting instants,
// counts and period spans.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/luthersystems/raymond"

	"github.com/caldros/cronweave/libdates"
)

// ScheduleView is the template context passed to Render: everything a
// schedule summary template needs about one recurrence.
type ScheduleView struct {
	Name        string
	Cron        string
	Mode        string
	Description string

	// NextFires holds the upcoming admissible instants, formatted
	// "2006-01-02 15:04:05" in the order the caller computed them.
	NextFires []string

	// PeriodStart and PeriodEnd are set only when the schedule is a
	// start..end period rather than a single point form.
	PeriodStart string
	PeriodEnd   string
}

// Template is the parsed form a caller holds onto to render repeatedly
// without re-parsing.
type Template *raymond.Template

// Parse parses a schedule-description template string, registering the
// schedule helpers before returning it.
func Parse(tpl string) (*raymond.Template, error) {
	t, err := raymond.Parse(tpl)
	if err != nil {
		return nil, err
	}
	addHelpers(t)
	return t, nil
}

// Render parses tpl and executes it against data in one step.
func Render(tpl string, data ScheduleView) (string, error) {
	t, err := Parse(tpl)
	if err != nil {
		return "", err
	}
	return t.Exec(data)
}

// RenderTemplate executes an already-parsed template against data,
// avoiding a re-parse when the same template is rendered repeatedly.
func RenderTemplate(t *raymond.Template, data ScheduleView) (string, error) {
	return t.Exec(data)
}

func addHelpers(t *raymond.Template) {
	t.RegisterHelper("count", func(items []string) int {
		return len(items)
	})

	t.RegisterHelper("first", func(items []string) string {
		if len(items) == 0 {
			return ""
		}
		return items[0]
	})

	t.RegisterHelper("pluralize", func(n int, singular, plural string) string {
		if n == 1 {
			return singular
		}
		return plural
	})

	t.RegisterHelper("ordinal", func(v interface{}) string {
		n, ok := toInt(v)
		if !ok {
			return ""
		}
		return humanize.Ordinal(n)
	})

	t.RegisterHelper("comma", func(v interface{}) string {
		n, ok := toInt(v)
		if !ok {
			return ""
		}
		return humanize.Comma(int64(n))
	})

	t.RegisterHelper("time-ago", func(stamp string) string {
		when, err := time.Parse("2006-01-02 15:04:05", stamp)
		if err != nil {
			return stamp
		}
		return humanize.Time(when)
	})

	t.RegisterHelper("date-beautify", func(stamp string) string {
		when, err := time.Parse("2006-01-02 15:04:05", stamp)
		if err != nil {
			return stamp
		}
		return when.Format("02 January 2006 at 15:04")
	})

	t.RegisterHelper("span", func(from, to string) string {
		start, err := time.Parse("2006-01-02 15:04:05", from)
		if err != nil {
			return ""
		}
		end, err := time.Parse("2006-01-02 15:04:05", to)
		if err != nil {
			return ""
		}
		diff, err := libdates.DiffYMD(start, end)
		if err != nil {
			return ""
		}
		return formatYMDiff(diff)
	})

	t.RegisterHelper("upper", strings.ToUpper)
	t.RegisterHelper("lower", strings.ToLower)
}

// formatYMDiff renders a period span's (years, months, days) length the way
// "span" needs for a period's duration, e.g. "1 year, 2 months, 3 days".
// Zero-valued components are omitted; an all-zero diff renders "0 days".
func formatYMDiff(d libdates.YMDiff) string {
	var parts []string
	if d.Years > 0 {
		parts = append(parts, pluralizeUnit(d.Years, "year"))
	}
	if d.Months > 0 {
		parts = append(parts, pluralizeUnit(d.Months, "month"))
	}
	if d.Days > 0 || len(parts) == 0 {
		parts = append(parts, pluralizeUnit(d.Days, "day"))
	}
	return strings.Join(parts, ", ")
}

func pluralizeUnit(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
