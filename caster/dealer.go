package caster

import "reflect"

// StructPair is a (source, destination) type pair awaiting a plan.
type StructPair struct{ Src, Dst reflect.Type }

// Dealer is a work queue of type pairs; every pair is handed out at most once.
type Dealer struct {
	needs map[StructPair]struct{}
	done  map[StructPair]struct{}
	order []StructPair
}

// NextNeeds pops a pending pair in the order it was requested.
func (d *Dealer) NextNeeds() (src, dst reflect.Type, ok bool) {
	for len(d.order) > 0 {
		pair := d.order[0]
		d.order = d.order[1:]

		if _, pending := d.needs[pair]; !pending {
			continue
		}

		delete(d.needs, pair)

		if _, exists := d.done[pair]; !exists {
			d.Done(pair.Src, pair.Dst)

			return pair.Src, pair.Dst, true
		}
	}

	return
}

// Needs queues a pair unless it was already handed out.
func (d *Dealer) Needs(src, dst reflect.Type) {
	if d.needs == nil {
		d.needs = make(map[StructPair]struct{})
	}

	pair := StructPair{Src: src, Dst: dst}
	if _, exists := d.done[pair]; exists {
		return
	}

	if _, queued := d.needs[pair]; !queued {
		d.needs[pair] = struct{}{}
		d.order = append(d.order, pair)
	}
}

// Done marks a pair as handled.
func (d *Dealer) Done(src, dst reflect.Type) {
	if d.done == nil {
		d.done = make(map[StructPair]struct{})
	}

	pair := StructPair{Src: src, Dst: dst}
	delete(d.needs, pair)
	d.done[pair] = struct{}{}
}

// Handled returns every pair marked done.
func (d *Dealer) Handled() []StructPair {
	out := make([]StructPair, 0, len(d.done))
	for pair := range d.done {
		out = append(out, pair)
	}

	return out
}
