package cronsyntax

import (
	"strings"

	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/cronerr"
	"github.com/caldros/cronweave/mark"
)

// ParsePoint parses a single cron pattern (the part of a full cron string
// before any ';mode' suffix) for mode into the calendar recipes - already
// reversed into the day-first/year-last order calendar.New and engine.New
// expect - and the three clock recipes, in (hour, minute, second) order.
//
// Tokens are written in the natural civil order an instant reads in
// (year first, clock last): M is "year month day hh mm ss", D is
// "year day hh mm ss", W is "year week weekday hh mm ss", MW is "year month
// week weekday hh mm ss". One token fewer than the mode's count is allowed,
// in which case seconds defaults to Solo(0).
func ParsePoint(cron string, mode calendar.Mode) (calRecipes []mark.Recipe, clockRecipes [3]mark.Recipe, err error) {
	want := mode.Digits() + 3
	tokens := strings.Fields(cron)
	recipes := make([]mark.Recipe, 0, want)
	for _, tok := range tokens {
		r, err := decodeScope(tok)
		if err != nil {
			return nil, clockRecipes, err
		}
		recipes = append(recipes, r)
	}
	if len(recipes) == want-1 {
		recipes = append(recipes, mark.SoloRecipe(0))
	}
	if len(recipes) != want {
		return nil, clockRecipes, &cronerr.ModeMismatch{Mode: mode.String(), Want: want, Got: len(recipes)}
	}

	calForward := recipes[:mode.Digits()]
	calRecipes = reverseRecipes(calForward)
	copy(clockRecipes[:], recipes[mode.Digits():])
	return calRecipes, clockRecipes, nil
}

func reverseRecipes(in []mark.Recipe) []mark.Recipe {
	out := make([]mark.Recipe, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}
