package calendar

import "github.com/caldros/cronweave/cronerr"

func (b *branch) inadequate(op string) error {
	return &cronerr.Inadequate{Op: op, Digit: b.name}
}
