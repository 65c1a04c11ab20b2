// Package cronsyntax turns the cron-like textual grammar into the
// mark.Recipe values package calendar and package clock's constructors
// consume.
package cronsyntax

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/caldros/cronweave/cronerr"
	"github.com/caldros/cronweave/mark"
)

var (
	soloPattern     = regexp.MustCompile(`^-?\d+$`)
	wildcardPattern = regexp.MustCompile(`^\*$`)
	seqPattern      = regexp.MustCompile(`^(\*|-?\d+~-?\d+)(?:/(\d+))?$`)
	enumPattern     = regexp.MustCompile(`^(?:-?\d+,)+-?\d+,?$`)
	spanPattern     = regexp.MustCompile(`^(-?\d*)\.\.(-?\d*)$`)
)

// decodeScope turns one whitespace-delimited token into a Recipe, trying
// solo, wildcard, seq and enum in that order. Returns *cronerr.NoMatch if
// none apply.
func decodeScope(token string) (mark.Recipe, error) {
	switch {
	case soloPattern.MatchString(token):
		v, err := strconv.Atoi(token)
		if err != nil {
			return mark.Recipe{}, &cronerr.NoMatch{Token: token}
		}
		return mark.SoloRecipe(v), nil
	case wildcardPattern.MatchString(token):
		return mark.Every(), nil
	case seqPattern.MatchString(token):
		return decodeSeq(token)
	case enumPattern.MatchString(token):
		return decodeEnum(token)
	default:
		return mark.Recipe{}, &cronerr.NoMatch{Token: token}
	}
}

func decodeSeq(token string) (mark.Recipe, error) {
	groups := seqPattern.FindStringSubmatch(token)
	stride := 1
	if groups[2] != "" {
		s, err := strconv.Atoi(groups[2])
		if err != nil {
			return mark.Recipe{}, &cronerr.NoMatch{Token: token}
		}
		stride = s
	}
	if groups[1] == "*" {
		return mark.SeqRecipe(0, -1, stride), nil
	}
	parts := strings.SplitN(groups[1], "~", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return mark.Recipe{}, &cronerr.NoMatch{Token: token}
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return mark.Recipe{}, &cronerr.NoMatch{Token: token}
	}
	return mark.SeqRecipe(start, end, stride), nil
}

func decodeEnum(token string) (mark.Recipe, error) {
	items := strings.Split(token, ",")
	if items[len(items)-1] == "" {
		items = items[:len(items)-1]
	}
	vals := make([]int, len(items))
	for i, s := range items {
		v, err := strconv.Atoi(s)
		if err != nil {
			return mark.Recipe{}, &cronerr.NoMatch{Token: token}
		}
		vals[i] = v
	}
	return mark.EnumRecipe(vals), nil
}

// decodeSpan parses a period-form "a..b" token into its two bounds,
// defaulting an empty side to the Every convention (0 = first, -1 = last).
func decodeSpan(token string) (start, end int, err error) {
	groups := spanPattern.FindStringSubmatch(token)
	if groups == nil {
		return 0, 0, &cronerr.NoMatch{Token: token}
	}
	start, end = 0, -1
	if groups[1] != "" {
		start, err = strconv.Atoi(groups[1])
		if err != nil {
			return 0, 0, &cronerr.NoMatch{Token: token}
		}
	}
	if groups[2] != "" {
		end, err = strconv.Atoi(groups[2])
		if err != nil {
			return 0, 0, &cronerr.NoMatch{Token: token}
		}
	}
	return start, end, nil
}
