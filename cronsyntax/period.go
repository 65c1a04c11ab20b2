package cronsyntax

import (
	"strings"

	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/cronerr"
	"github.com/caldros/cronweave/mark"
)

// PointRecipes is the (calendar, clock) recipe pair ParsePeriod produces
// for a period's start or end boundary.
type PointRecipes struct {
	Cal   []mark.Recipe
	Clock [3]mark.Recipe
}

// ParsePeriod parses a period-form cron pattern ("start..end" at one
// scope, every other scope a plain point form shared by both ends) into
// the start and end recipe pairs. Token order and count follow ParsePoint.
// At most one token may be a span ("a..b"); a pattern with no span is
// accepted and yields identical start and end recipes. Every other token
// decodes once and is reused identically for both start and end.
//
// An "a&b" narrowing form following a span scope has circulated in older
// grammar sketches but is unreachable as specified (the state that enables
// it is never entered before the first token decodes), so this parser does
// not implement it.
func ParsePeriod(cron string, mode calendar.Mode) (start, end PointRecipes, err error) {
	want := mode.Digits() + 3
	tokens := strings.Fields(cron)

	startRecipes := make([]mark.Recipe, 0, want)
	endRecipes := make([]mark.Recipe, 0, want)
	spanSeen := false
	for _, tok := range tokens {
		if spanPattern.MatchString(tok) {
			if spanSeen {
				return PointRecipes{}, PointRecipes{}, &cronerr.NoMatch{Token: tok}
			}
			spanSeen = true
			s, e, err := decodeSpan(tok)
			if err != nil {
				return PointRecipes{}, PointRecipes{}, err
			}
			startRecipes = append(startRecipes, mark.SoloRecipe(s))
			endRecipes = append(endRecipes, mark.SoloRecipe(e))
			continue
		}
		r, err := decodeScope(tok)
		if err != nil {
			return PointRecipes{}, PointRecipes{}, err
		}
		startRecipes = append(startRecipes, r)
		endRecipes = append(endRecipes, r)
	}

	if len(startRecipes) == want-1 {
		startRecipes = append(startRecipes, mark.SoloRecipe(0))
		endRecipes = append(endRecipes, mark.SoloRecipe(0))
	}
	if len(startRecipes) != want {
		return PointRecipes{}, PointRecipes{}, &cronerr.ModeMismatch{Mode: mode.String(), Want: want, Got: len(startRecipes)}
	}

	start = PointRecipes{Cal: reverseRecipes(startRecipes[:mode.Digits()])}
	copy(start.Clock[:], startRecipes[mode.Digits():])
	end = PointRecipes{Cal: reverseRecipes(endRecipes[:mode.Digits()])}
	copy(end.Clock[:], endRecipes[mode.Digits():])
	return start, end, nil
}
