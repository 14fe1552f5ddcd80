package schedule

import (
	"fmt"

	"github.com/vilafit/coachplan-backend/internal/apperr"
)

func validDayNumber(day int) bool { return day >= 1 && day <= 7 }

// AssignSelected appends the catalog items matching the armed selection to
// the given day, creating the day if absent. Existing items are preserved.
func (p *Planner) AssignSelected(week, day int, catalog []Item) error {
	if !validDayNumber(day) {
		return fmt.Errorf("day %d: %w", day, apperr.ErrInvalidArgument)
	}
	armed := p.selection.Armed()
	if len(armed) == 0 {
		return nil
	}
	byKey := map[string]Item{}
	for _, it := range catalog {
		byKey[it.Ref.String()] = it
	}

	p.snapshot()
	w, ok := p.schedule[week]
	if !ok {
		w = Week{}
		p.schedule[week] = w
	}
	d, ok := w[day]
	if !ok {
		d = &Day{BlockNames: map[int]string{}, BlockCount: 1}
		w[day] = d
	}
	for _, ref := range armed {
		it, ok := byKey[ref.String()]
		if !ok {
			continue
		}
		placed := it.clone()
		if placed.Block < 1 {
			placed.Block = 1
		}
		placed.Order = len(d.Items) + 1
		placed.IsActive = true
		d.Items = append(d.Items, placed)
	}
	sanitizeDay(d, p.category)
	p.recomputeSimilar(week, day)
	return nil
}

// UpdateDay replaces the day's items, block names and block count wholesale.
// An empty item list deletes the day, and a week left without days is
// deleted with it.
func (p *Planner) UpdateDay(week, day int, items []Item, blockNames map[int]string, blockCount int) error {
	if !validDayNumber(day) {
		return fmt.Errorf("day %d: %w", day, apperr.ErrInvalidArgument)
	}
	p.snapshot()
	w, ok := p.schedule[week]
	if !ok {
		w = Week{}
		p.schedule[week] = w
	}
	if len(items) == 0 {
		delete(w, day)
		if len(w) == 0 {
			delete(p.schedule, week)
		}
		p.recomputeSimilar(week, day)
		return nil
	}
	if blockNames == nil {
		blockNames = map[int]string{}
	}
	d := &Day{Items: items, BlockNames: blockNames, BlockCount: blockCount}
	sanitizeDay(d, p.category)
	w[day] = d
	p.recomputeSimilar(week, day)
	return nil
}

// MoveUpInBlock moves the item at idx one position earlier within its block,
// or migrates it to the previous block when it is already first.
func (p *Planner) MoveUpInBlock(week, day, idx int) error {
	return p.moveInBlock(week, day, idx, -1)
}

// MoveDownInBlock is the downward counterpart of MoveUpInBlock.
func (p *Planner) MoveDownInBlock(week, day, idx int) error {
	return p.moveInBlock(week, day, idx, +1)
}

func (p *Planner) moveInBlock(week, day, idx, dir int) error {
	w, ok := p.schedule[week]
	if !ok {
		return fmt.Errorf("week %d: %w", week, apperr.ErrNotFound)
	}
	d, ok := w[day]
	if !ok {
		return fmt.Errorf("day %d-%d: %w", week, day, apperr.ErrNotFound)
	}
	if idx < 0 || idx >= len(d.Items) {
		return fmt.Errorf("item index %d: %w", idx, apperr.ErrInvalidArgument)
	}

	p.snapshot()
	neighbor := idx + dir
	if neighbor >= 0 && neighbor < len(d.Items) && d.Items[neighbor].Block == d.Items[idx].Block {
		d.Items[idx], d.Items[neighbor] = d.Items[neighbor], d.Items[idx]
	} else {
		// Block boundary: the item changes block instead of position.
		target := d.Items[idx].Block + dir
		if target < 1 {
			target = 1
		}
		if target > d.BlockCount {
			target = d.BlockCount
		}
		d.Items[idx].Block = target
	}
	sanitizeDay(d, p.category)
	p.recomputeSimilar(week, day)
	return nil
}

// ApplyToSimilarDays overwrites every day whose fingerprint matches the
// source day with the source's items, block names and block count. Only the
// in-memory schedule is touched.
func (p *Planner) ApplyToSimilarDays(week, day int) ([]string, error) {
	w, ok := p.schedule[week]
	if !ok {
		return nil, fmt.Errorf("week %d: %w", week, apperr.ErrNotFound)
	}
	src, ok := w[day]
	if !ok {
		return nil, fmt.Errorf("day %d-%d: %w", week, day, apperr.ErrNotFound)
	}
	matches := FindSimilarDays(p.schedule, DayKey(week, day), src.Items)
	if len(matches) == 0 {
		return nil, nil
	}
	p.snapshot()
	for _, key := range matches {
		var mw, md int
		if _, err := fmt.Sscanf(key, "%d-%d", &mw, &md); err != nil {
			continue
		}
		p.schedule[mw][md] = src.clone()
		p.recomputeSimilar(mw, md)
	}
	p.recomputeSimilar(week, day)
	return matches, nil
}
