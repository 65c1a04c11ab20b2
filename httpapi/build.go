package httpapi

import (
	"fmt"

	"github.com/caldros/cronweave/calendar"
	"github.com/caldros/cronweave/cronsyntax"
	"github.com/caldros/cronweave/engine"
	"github.com/caldros/cronweave/mark"
	"github.com/caldros/cronweave/schedulestore"
)

const (
	hourBase, hourCap     = 0, 23
	minuteBase, minuteCap = 0, 59
	secondBase, secondCap = 0, 59
)

// buildEngine turns a stored point-form schedule into an engine.Engine.
func buildEngine(sch schedulestore.Schedule) (*engine.Engine, error) {
	mode, err := calendar.ParseMode(sch.Mode)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	calRecipes, clockRecipes, err := cronsyntax.ParsePoint(sch.Cron, mode)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	hour, minute, second, err := resolveClock(clockRecipes)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	return engine.New(mode, calRecipes, hour, minute, second)
}

// buildPeriod turns a stored period-form schedule into an engine.Period.
func buildPeriod(sch schedulestore.Schedule) (*engine.Period, error) {
	mode, err := calendar.ParseMode(sch.Mode)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	startRecipes, endRecipes, err := cronsyntax.ParsePeriod(sch.Cron, mode)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	startHour, startMinute, startSecond, err := resolveClock(startRecipes.Clock)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	endHour, endMinute, endSecond, err := resolveClock(endRecipes.Clock)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	startEngine, err := engine.New(mode, startRecipes.Cal, startHour, startMinute, startSecond)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	endEngine, err := engine.New(mode, endRecipes.Cal, endHour, endMinute, endSecond)
	if err != nil {
		return nil, fmt.Errorf("httpapi: schedule %s: %w", sch.Name, err)
	}
	return engine.NewPeriod(startEngine, endEngine)
}

func resolveClock(recipes [3]mark.Recipe) (hour, minute, second mark.Mark, err error) {
	hour, err = recipes[0].Resolve(hourBase, hourCap)
	if err != nil {
		return nil, nil, nil, err
	}
	minute, err = recipes[1].Resolve(minuteBase, minuteCap)
	if err != nil {
		return nil, nil, nil, err
	}
	second, err = recipes[2].Resolve(secondBase, secondCap)
	if err != nil {
		return nil, nil, nil, err
	}
	return hour, minute, second, nil
}
