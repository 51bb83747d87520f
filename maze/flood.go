// Package maze: flood planner. Flood computes step distances to a target
// with a plain breadth-first expansion; HeadingToSmallest turns a
// CostMap into one deterministic steering decision.
package maze

// flooder encapsulates the mutable state of one flood pass.
type flooder struct {
	m     *Maze
	mask  Mask
	costs *CostMap
	queue []Location
}

// Flood returns the step distance from every cell to target under mask
// k. Unreached cells hold Unreachable. The expansion is FIFO with
// strictly-greater relaxation, so the result is independent of visit
// order and repeated floods over the same map are identical.
// Complexity: O(Size²) time and memory.
func (m *Maze) Flood(target Location, k Mask) *CostMap {
	f := &flooder{
		m:     m,
		mask:  k,
		costs: newCostMap(),
		queue: make([]Location, 0, Size*Size),
	}
	f.costs.set(target, 0)
	f.queue = append(f.queue, target)
	f.run()

	return f.costs
}

// run drains the queue, relaxing the neighbours of each cell in turn.
func (f *flooder) run() {
	for len(f.queue) > 0 {
		here := f.queue[0]
		f.queue = f.queue[1:]
		f.relaxNeighbours(here)
	}
}

// relaxNeighbours offers cost+1 to every admissible neighbour of here,
// in fixed N,E,S,W order, enqueueing each cell whose cost strictly
// improves. Costs saturate below the Unreachable sentinel.
func (f *flooder) relaxNeighbours(here Location) {
	next := int(f.costs.At(here)) + 1
	if next >= int(Unreachable) {
		return
	}
	for h := North; h <= West; h++ {
		if !f.m.IsExit(here, h, f.mask) {
			continue
		}
		n, ok := here.Neighbour(h)
		if !ok {
			continue
		}
		if int(f.costs.At(n)) > next {
			f.costs.set(n, uint8(next))
			f.queue = append(f.queue, n)
		}
	}
}

// HeadingToSmallest returns the heading of the admissible neighbour of
// loc that is strictly cheaper than loc itself, examining candidates in
// the fixed order {preferred, right of preferred, left of preferred,
// reverse of preferred} so that straight-through wins ties, then a right
// turn, then a left turn, then reversing. Returns Blocked when no
// neighbour improves on loc (walled in, or loc is the flood target).
func (m *Maze) HeadingToSmallest(costs *CostMap, loc Location, preferred Heading, k Mask) Heading {
	order := [headingCount]Heading{
		preferred,
		preferred.Right(),
		preferred.Left(),
		preferred.Reverse(),
	}
	best := costs.At(loc)
	winner := Blocked
	for _, h := range order {
		if !m.IsExit(loc, h, k) {
			continue
		}
		n, ok := loc.Neighbour(h)
		if !ok {
			continue
		}
		if c := costs.At(n); c < best {
			best, winner = c, h
		}
	}

	return winner
}
