package schedule

import "github.com/vilafit/coachplan-backend/internal/apperr"

// AddWeek appends an empty week after the last one and makes it current.
// The plan quota is checked against the total active weeks (weeks times
// periods) before anything mutates.
func (p *Planner) AddWeek() (int, error) {
	// Reaching the limit already rejects: the quota message reads
	// "alcanzado", and that is how the product behaves.
	if p.limits.WeeksLimit > 0 && (len(p.schedule)+1)*p.periods >= p.limits.WeeksLimit {
		if p.log != nil {
			p.log.Warn("Weeks quota rejected AddWeek", "weeks", len(p.schedule), "periods", p.periods, "limit", p.limits.WeeksLimit)
		}
		return 0, &apperr.QuotaExceededError{Limit: p.limits.WeeksLimit}
	}
	next := 1
	if nums := p.schedule.WeekNumbers(); len(nums) > 0 {
		next = nums[len(nums)-1] + 1
	}
	p.snapshot()
	p.schedule[next] = Week{}
	p.currentWeek = next
	return next, nil
}

// RemoveWeek deletes a week and reindexes the remaining weeks to a
// contiguous 1..N range. Week numbers after the removed one shift down, so
// callers must not hold on to week identities across a removal. Removing the
// last remaining week is a no-op.
func (p *Planner) RemoveWeek(week int) {
	if len(p.schedule) <= 1 {
		return
	}
	if _, ok := p.schedule[week]; !ok {
		return
	}
	p.snapshot()
	delete(p.schedule, week)
	reindexed := Schedule{}
	for i, w := range p.schedule.WeekNumbers() {
		reindexed[i+1] = p.schedule[w]
	}
	p.schedule = reindexed
	if p.currentWeek > len(p.schedule) {
		p.currentWeek = len(p.schedule)
	}
	p.similar = map[string][]string{}
}

// RemoveCurrentWeek removes whichever week the session is positioned on.
func (p *Planner) RemoveCurrentWeek() {
	p.RemoveWeek(p.currentWeek)
}

// ReplicateWeeks clones the whole existing pattern so it repeats n times in
// total. Aborts without mutating when the result would breach the weeks
// quota.
func (p *Planner) ReplicateWeeks(n int) error {
	if n <= 1 {
		return nil
	}
	base := len(p.schedule)
	if p.limits.WeeksLimit > 0 && base*n*p.periods > p.limits.WeeksLimit {
		if p.log != nil {
			p.log.Warn("Weeks quota rejected ReplicateWeeks", "weeks", base, "times", n, "periods", p.periods, "limit", p.limits.WeeksLimit)
		}
		return &apperr.QuotaExceededError{Limit: p.limits.WeeksLimit}
	}
	p.snapshot()
	baseNums := p.schedule.WeekNumbers()
	for i := 1; i < n; i++ {
		for _, b := range baseNums {
			clone := make(Week, len(p.schedule[b]))
			for d, day := range p.schedule[b] {
				clone[d] = day.clone()
			}
			p.schedule[b+base*i] = clone
		}
	}
	return nil
}
