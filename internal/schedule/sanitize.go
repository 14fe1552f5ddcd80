package schedule

import "fmt"

// Preference order for backfilled nutrition block names. The last two are
// repeatable; the rest are used at most once per day.
var nutritionBlockNames = []string{
	"Desayuno", "Almuerzo", "Merienda", "Cena", "Colación", "Pre-entreno", "Post-entreno",
}

const (
	namePreWorkout  = "Pre-entreno"
	namePostWorkout = "Post-entreno"
)

// Sanitize normalizes a freshly loaded schedule in place and returns it:
// legacy array-shaped days are already lifted by the codec, here item blocks
// are clamped to >=1, block counts are reconciled with the blocks actually
// occupied, every occupied block gets a name, and empty days/weeks are
// dropped. Sanitizing an already sanitized schedule changes nothing.
func Sanitize(s Schedule, category Category) Schedule {
	for w, week := range s {
		for dn, day := range week {
			if day == nil || len(day.Items) == 0 {
				delete(week, dn)
				continue
			}
			sanitizeDay(day, category)
		}
		if len(week) == 0 {
			delete(s, w)
		}
	}
	return s
}

func sanitizeDay(d *Day, category Category) {
	if d.BlockNames == nil {
		d.BlockNames = map[int]string{}
	}
	maxBlock := 1
	occupied := map[int]bool{}
	for i := range d.Items {
		if d.Items[i].Block < 1 {
			d.Items[i].Block = 1
		}
		if d.Items[i].Block > maxBlock {
			maxBlock = d.Items[i].Block
		}
		occupied[d.Items[i].Block] = true
	}
	if d.BlockCount < maxBlock {
		d.BlockCount = maxBlock
	}
	if d.BlockCount < 1 {
		d.BlockCount = 1
	}

	if category == CategoryNutrition {
		uses := map[string]int{}
		for _, name := range d.BlockNames {
			uses[name]++
		}
		for b := 1; b <= d.BlockCount; b++ {
			if !occupied[b] {
				continue
			}
			if _, ok := d.BlockNames[b]; ok {
				continue
			}
			name := nextNutritionName(uses)
			d.BlockNames[b] = name
			uses[name]++
		}
		return
	}

	for b := 1; b <= d.BlockCount; b++ {
		if !occupied[b] {
			continue
		}
		if _, ok := d.BlockNames[b]; ok {
			continue
		}
		d.BlockNames[b] = fmt.Sprintf("Bloque %d", b)
	}
}

// nextNutritionName picks the first unused single-use name, then falls back
// to whichever repeatable name has fewer uses.
func nextNutritionName(uses map[string]int) string {
	for _, name := range nutritionBlockNames {
		if name == namePreWorkout || name == namePostWorkout {
			continue
		}
		if uses[name] == 0 {
			return name
		}
	}
	if uses[namePreWorkout] <= uses[namePostWorkout] {
		return namePreWorkout
	}
	return namePostWorkout
}
