package notify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caldros/cronweave/notify"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		tplStr string
		err    bool
	}{
		{
			name:   "ok",
			tplStr: `Fires at {{Cron}}`,
		},
		{
			name:   "bad",
			tplStr: `{{{Cron}}`,
			err:    true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := notify.Parse(test.tplStr)
			if test.err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRenderBasicFields(t *testing.T) {
	view := notify.ScheduleView{
		Name:      "nightly-backup",
		Cron:      "* * * 2 0 0",
		Mode:      "M",
		NextFires: []string{"2026-08-03 02:00:00", "2026-08-04 02:00:00"},
	}
	out, err := notify.Render(`{{Name}} ({{Cron}}) next: {{first NextFires}}`, view)
	require.NoError(t, err)
	require.Equal(t, "nightly-backup (* * * 2 0 0) next: 2026-08-03 02:00:00", out)
}

func TestRenderCountAndPluralize(t *testing.T) {
	view := notify.ScheduleView{
		NextFires: []string{"2026-08-03 02:00:00", "2026-08-04 02:00:00", "2026-08-05 02:00:00"},
	}
	out, err := notify.Render(`{{count NextFires}} {{pluralize (count NextFires) "fire" "fires"}}`, view)
	require.NoError(t, err)
	require.Equal(t, "3 fires", out)
}

func TestRenderOrdinalHelper(t *testing.T) {
	out, err := notify.Render(`the {{ordinal 3}} of the month`, notify.ScheduleView{})
	require.NoError(t, err)
	require.Equal(t, "the 3rd of the month", out)
}

func TestRenderDateBeautify(t *testing.T) {
	view := notify.ScheduleView{NextFires: []string{"2026-08-03 09:00:00"}}
	out, err := notify.Render(`next: {{date-beautify (first NextFires)}}`, view)
	require.NoError(t, err)
	require.Equal(t, "next: 03 August 2026 at 09:00", out)
}

func TestRenderPeriodBounds(t *testing.T) {
	view := notify.ScheduleView{
		PeriodStart: "2026-08-03 09:00:00",
		PeriodEnd:   "2026-08-03 17:00:00",
	}
	out, err := notify.Render(`{{PeriodStart}} .. {{PeriodEnd}}`, view)
	require.NoError(t, err)
	require.Equal(t, "2026-08-03 09:00:00 .. 2026-08-03 17:00:00", out)
}

func TestRenderSpanHelper(t *testing.T) {
	view := notify.ScheduleView{
		PeriodStart: "2026-08-03 09:00:00",
		PeriodEnd:   "2027-10-06 09:00:00",
	}
	out, err := notify.Render(`{{span PeriodStart PeriodEnd}}`, view)
	require.NoError(t, err)
	require.Equal(t, "1 year, 2 months, 3 days", out)
}

func TestRenderSpanHelperSameDay(t *testing.T) {
	view := notify.ScheduleView{
		PeriodStart: "2026-08-03 09:00:00",
		PeriodEnd:   "2026-08-03 17:00:00",
	}
	out, err := notify.Render(`{{span PeriodStart PeriodEnd}}`, view)
	require.NoError(t, err)
	require.Equal(t, "0 days", out)
}

func TestRenderSpanHelperBadInput(t *testing.T) {
	view := notify.ScheduleView{PeriodStart: "not-a-time", PeriodEnd: "2026-08-03 17:00:00"}
	out, err := notify.Render(`{{span PeriodStart PeriodEnd}}`, view)
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestRenderUpperLower(t *testing.T) {
	view := notify.ScheduleView{Mode: "mw"}
	out, err := notify.Render(`{{upper Mode}}`, view)
	require.NoError(t, err)
	require.Equal(t, "MW", out)
}

func TestParseRenderTemplateReuse(t *testing.T) {
	tpl, err := notify.Parse(`{{Name}}`)
	require.NoError(t, err)
	out, err := notify.RenderTemplate(tpl, notify.ScheduleView{Name: "a"})
	require.NoError(t, err)
	require.Equal(t, "a", out)
	out, err = notify.RenderTemplate(tpl, notify.ScheduleView{Name: "b"})
	require.NoError(t, err)
	require.Equal(t, "b", out)
}
