// Package schedulestore persists named schedule definitions as JSON
// documents behind small Getter/Putter/Deleter interfaces, with S3 and
// Azure blob backends in subpackages.
package schedulestore

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"
)

// ErrNotFound is returned when a schedule name has no stored document.
var ErrNotFound = fmt.Errorf("schedule not found")

// Getter retrieves schedule documents by name.
type Getter interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// Putter stores schedule documents by name.
type Putter interface {
	Put(ctx context.Context, name string, body []byte) error
}

// Deleter removes a stored schedule document by name.
type Deleter interface {
	Delete(ctx context.Context, name string) error
}

// Store is a named-schedule document store.
type Store interface {
	Getter
	Putter
	Deleter
}

// Lister enumerates the names of every stored schedule. It is a separate,
// optional interface from Store since not every backing store can offer it
// cheaply (a plain key-value Getter/Putter/Deleter has no listing notion);
// backends that can support it implement it alongside Store.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// All reads and decodes every schedule known to lister, skipping (and
// continuing past) any name that fails to decode rather than aborting the
// whole scan over one bad document.
func All(ctx context.Context, lister Lister, getter Getter) ([]Schedule, error) {
	names, err := lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("schedulestore: list: %w", err)
	}
	schedules := make([]Schedule, 0, len(names))
	for _, name := range names {
		sch, err := Get(ctx, getter, name)
		if err != nil {
			continue
		}
		schedules = append(schedules, sch)
	}
	return schedules, nil
}

// Schedule is the persisted representation of one named recurrence: the
// cron string and mode cronsyntax.ParsePoint (or ParsePeriod, when
// IsPeriod is set) needs to rebuild the engine.Engine or engine.Period,
// plus an operator-facing description.
type Schedule struct {
	Name        string `json:"name"`
	Cron        string `json:"cron"`
	Mode        string `json:"mode"`
	IsPeriod    bool   `json:"is_period"`
	Description string `json:"description,omitempty"`
}

var validNameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_./()-]*$`)

// ValidName returns an error if name is unsuitable as a store key, reusing
// path-traversal-safe validation of caller-supplied names.
func ValidName(name string) error {
	if name == "" {
		return fmt.Errorf("missing name")
	}
	if !validNameRegexp.MatchString(name) {
		return fmt.Errorf("invalid name")
	}
	if name != strings.TrimPrefix(path.Join("/", name), "/") {
		return fmt.Errorf("invalid path")
	}
	return nil
}

// Put validates sch and writes it as JSON to store under sch.Name.
func Put(ctx context.Context, store Putter, sch Schedule) error {
	if err := ValidName(sch.Name); err != nil {
		return err
	}
	body, err := json.Marshal(sch)
	if err != nil {
		return fmt.Errorf("schedulestore: marshal %s: %w", sch.Name, err)
	}
	return store.Put(ctx, sch.Name, body)
}

// Get reads and decodes the schedule document named name.
func Get(ctx context.Context, store Getter, name string) (Schedule, error) {
	if err := ValidName(name); err != nil {
		return Schedule{}, err
	}
	body, err := store.Get(ctx, name)
	if err != nil {
		return Schedule{}, err
	}
	var sch Schedule
	if err := json.Unmarshal(body, &sch); err != nil {
		return Schedule{}, fmt.Errorf("schedulestore: unmarshal %s: %w", name, err)
	}
	return sch, nil
}

// Delete removes the schedule document named name.
func Delete(ctx context.Context, store Deleter, name string) error {
	if err := ValidName(name); err != nil {
		return err
	}
	return store.Delete(ctx, name)
}
