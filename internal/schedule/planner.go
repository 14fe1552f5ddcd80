package schedule

import (
	"github.com/vilafit/coachplan-backend/internal/logger"
)

// PlanLimits carries the subscription quotas consulted before growing the
// schedule.
type PlanLimits struct {
	WeeksLimit      int
	ActivitiesLimit int
}

// Planner is one editing session over a client's multi-week schedule. It is
// not safe for concurrent use; callers serialize access per session.
type Planner struct {
	log         *logger.Logger
	category    Category
	schedule    Schedule
	currentWeek int
	periods     int
	limits      PlanLimits
	history     History
	selection   *Selection
	similar     map[string][]string
}

// NewPlanner sanitizes the given schedule and opens a session over it. An
// empty schedule starts with a single empty week.
func NewPlanner(s Schedule, category Category, periods int, limits PlanLimits, log *logger.Logger) *Planner {
	if log != nil {
		log = log.With("component", "Planner")
	}
	if s == nil {
		s = Schedule{}
	}
	Sanitize(s, category)
	if len(s) == 0 {
		s[1] = Week{}
	}
	if periods < 1 {
		periods = 1
	}
	return &Planner{
		log:         log,
		category:    category,
		schedule:    s,
		currentWeek: s.WeekNumbers()[0],
		periods:     periods,
		limits:      limits,
		selection:   NewSelection(),
		similar:     map[string][]string{},
	}
}

func (p *Planner) Schedule() Schedule { return p.schedule }

func (p *Planner) Category() Category { return p.category }

func (p *Planner) CurrentWeek() int { return p.currentWeek }

func (p *Planner) SetCurrentWeek(week int) {
	if _, ok := p.schedule[week]; ok {
		p.currentWeek = week
	}
}

func (p *Planner) Selection() *Selection { return p.selection }

func (p *Planner) CanUndo() bool { return p.history.CanUndo() }

// Undo replaces the live schedule with the most recent snapshot. With an
// empty history it is a no-op.
func (p *Planner) Undo() bool {
	prev, ok := p.history.Pop()
	if !ok {
		return false
	}
	p.schedule = prev
	if _, ok := p.schedule[p.currentWeek]; !ok {
		if nums := p.schedule.WeekNumbers(); len(nums) > 0 {
			p.currentWeek = nums[len(nums)-1]
		} else {
			p.currentWeek = 1
		}
	}
	// Every cached fingerprint set was computed against the undone schedule.
	p.similar = map[string][]string{}
	if p.log != nil {
		p.log.Debug("Undid last mutation", "weeks", p.schedule.NumberOfWeeks(), "remaining", p.history.Len())
	}
	return true
}

// SimilarDays returns the most recently computed similarity set for a day,
// computing it on first access.
func (p *Planner) SimilarDays(week, day int) []string {
	key := DayKey(week, day)
	if cached, ok := p.similar[key]; ok {
		return cached
	}
	p.recomputeSimilar(week, day)
	return p.similar[key]
}

func (p *Planner) snapshot() {
	p.history.Push(p.schedule)
}

func (p *Planner) recomputeSimilar(week, day int) {
	key := DayKey(week, day)
	var ref []Item
	if w, ok := p.schedule[week]; ok {
		if d, ok := w[day]; ok {
			ref = d.Items
		}
	}
	p.similar[key] = FindSimilarDays(p.schedule, key, ref)
}
