package schedule

import (
	"fmt"
	"regexp"
	"sort"
)

type Category string

const (
	CategoryFitness   Category = "fitness"
	CategoryNutrition Category = "nutrition"
)

// SeriesSet is one set prescription for a fitness item occurrence.
type SeriesSet struct {
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight,omitempty"`
	RestSeconds int     `json:"rest_seconds,omitempty"`
}

// Macros is the nutrition payload for one plate occurrence.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Ingredient struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

// Item is one exercise or plate placed in a day. Block groups items inside a
// day, Order sorts items within their block.
type Item struct {
	Ref         EntityRef    `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Block       int          `json:"block"`
	Order       int          `json:"order"`
	Series      []SeriesSet  `json:"series,omitempty"`
	Minutes     int          `json:"minutes,omitempty"`
	Calories    int          `json:"calories,omitempty"`
	Macros      *Macros      `json:"macros,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	IsActive    bool         `json:"is_active"`
}

var syntheticNameRe = regexp.MustCompile(`^(?i)(ejercicio|plato)\s+\d+$`)

// IsGeneric reports whether the item is a placeholder: no resolvable identity,
// or a synthetic auto-generated name. Generic items never participate in
// fingerprints and are never persisted.
func (it Item) IsGeneric() bool {
	if it.Ref.IsZero() {
		return true
	}
	return syntheticNameRe.MatchString(it.Name)
}

// Day is a scheduled day. An empty day is represented by absence from its
// week, never by a Day with no items.
type Day struct {
	Items      []Item         `json:"items"`
	BlockNames map[int]string `json:"block_names"`
	BlockCount int            `json:"block_count"`
}

func (d *Day) clone() *Day {
	if d == nil {
		return nil
	}
	out := &Day{
		Items:      make([]Item, len(d.Items)),
		BlockNames: make(map[int]string, len(d.BlockNames)),
		BlockCount: d.BlockCount,
	}
	for i, it := range d.Items {
		out.Items[i] = it.clone()
	}
	for b, name := range d.BlockNames {
		out.BlockNames[b] = name
	}
	return out
}

func (it Item) clone() Item {
	out := it
	if it.Series != nil {
		out.Series = append([]SeriesSet(nil), it.Series...)
	}
	if it.Macros != nil {
		m := *it.Macros
		out.Macros = &m
	}
	if it.Ingredients != nil {
		out.Ingredients = append([]Ingredient(nil), it.Ingredients...)
	}
	return out
}

// Week maps day number (1..7) to its entry.
type Week map[int]*Day

// Schedule maps week number (1..N, contiguous) to its week.
type Schedule map[int]Week

// Clone returns a structural deep copy.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for w, week := range s {
		cw := make(Week, len(week))
		for d, day := range week {
			cw[d] = day.clone()
		}
		out[w] = cw
	}
	return out
}

// NumberOfWeeks returns the count of weeks currently in the schedule.
func (s Schedule) NumberOfWeeks() int { return len(s) }

// WeekNumbers returns the week numbers in ascending order.
func (s Schedule) WeekNumbers() []int {
	nums := make([]int, 0, len(s))
	for w := range s {
		nums = append(nums, w)
	}
	sort.Ints(nums)
	return nums
}

// DayKey builds the canonical "<week>-<day>" key used by the similarity set.
func DayKey(week, day int) string { return fmt.Sprintf("%d-%d", week, day) }
