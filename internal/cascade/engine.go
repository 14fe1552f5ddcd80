package cascade

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vilafit/coachplan-backend/internal/apperr"
	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/schedule"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type Mode string

const (
	ModeSwap   Mode = "swap"
	ModeUpdate Mode = "update"
)

type Scope string

const (
	ScopeSameDay   Scope = "same_day"
	ScopeFutureAll Scope = "future_all"
)

const dateLayout = "2006-01-02"

// Occurrence is the new configuration for one ordinal of the edited item.
type Occurrence struct {
	Series      []schedule.SeriesSet  `json:"series,omitempty"`
	Minutes     int                   `json:"minutes,omitempty"`
	Calories    int                   `json:"calories,omitempty"`
	Macros      *schedule.Macros      `json:"macros,omitempty"`
	Ingredients []schedule.Ingredient `json:"ingredients,omitempty"`
}

// Request describes one confirmed edit to propagate across future records.
type Request struct {
	ClientID    uuid.UUID         `json:"client_id"`
	ActivityID  uuid.UUID         `json:"activity_id"`
	Category    schedule.Category `json:"category"`
	SourceDate  string            `json:"source_date"`
	Mode        Mode              `json:"mode"`
	Scope       Scope             `json:"scope"`
	OldID       int64             `json:"old_id,omitempty"`
	NewID       int64             `json:"new_id"`
	Occurrences []Occurrence      `json:"occurrences"`
}

// Result reports the cascade in aggregate: how many candidate records were
// rewritten and how many were left untouched.
type Result struct {
	UpdatedCount int `json:"updated_count"`
	SkippedCount int `json:"skipped_count"`
}

// RecordSource abstracts the per-day progress store. ListAfterDate must
// return records strictly after the given date, ordered by date ascending.
type RecordSource interface {
	ListAfterDate(ctx context.Context, clientID, activityID uuid.UUID, date string) ([]*types.DayRecord, error)
	BulkUpsert(ctx context.Context, records []*types.DayRecord) error
	Upsert(ctx context.Context, record *types.DayRecord) error
}

// DetailInvalidator drops locally cached day-detail views after a cascade so
// the next read re-fetches fresh data.
type DetailInvalidator interface {
	InvalidateDayDetails(ctx context.Context, clientID uuid.UUID, dates []string) error
}

type Engine interface {
	Run(ctx context.Context, req Request) (Result, error)
}

type engine struct {
	log     *logger.Logger
	records RecordSource
	cache   DetailInvalidator
}

func NewEngine(log *logger.Logger, records RecordSource, cache DetailInvalidator) Engine {
	engineLog := log.With("component", "CascadeEngine")
	return &engine{log: engineLog, records: records, cache: cache}
}

func (e *engine) Run(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}
	sourceDay, err := time.Parse(dateLayout, req.SourceDate)
	if err != nil {
		return Result{}, fmt.Errorf("source date %q: %w", req.SourceDate, apperr.ErrInvalidArgument)
	}

	// Fail-fast: a failed candidate fetch aborts the whole cascade.
	candidates, err := e.records.ListAfterDate(ctx, req.ClientID, req.ActivityID, req.SourceDate)
	if err != nil {
		return Result{}, fmt.Errorf("fetch cascade candidates: %w", err)
	}

	var modified []*types.DayRecord
	skipped := 0
	for _, rec := range candidates {
		if rec.Date <= req.SourceDate {
			// ListAfterDate already guarantees this; kept as a hard invariant.
			continue
		}
		if req.Scope == ScopeSameDay {
			recDay, perr := time.Parse(dateLayout, rec.Date)
			if perr != nil || recDay.Weekday() != sourceDay.Weekday() {
				skipped++
				continue
			}
		}
		changed, aerr := e.applyToRecord(rec, req)
		if aerr != nil {
			e.log.Warn("Skipping malformed day record in cascade", "record_id", rec.ID, "date", rec.Date, "error", aerr)
			skipped++
			continue
		}
		if !changed {
			skipped++
			continue
		}
		modified = append(modified, rec)
	}

	if len(modified) == 0 {
		return Result{UpdatedCount: 0, SkippedCount: skipped}, nil
	}

	updated := len(modified)
	if err := e.records.BulkUpsert(ctx, modified); err != nil {
		// The batch write failed; fall back to one-by-one so a single bad
		// row cannot sink the rest. Failures are logged and skipped, with
		// no rollback of rows already written.
		e.log.Warn("Bulk upsert of cascade batch failed, retrying per record", "error", err)
		updated = 0
		persisted := modified[:0]
		for _, rec := range modified {
			if uerr := e.records.Upsert(ctx, rec); uerr != nil {
				e.log.Error("Failed to persist cascaded day record", "record_id", rec.ID, "date", rec.Date, "error", uerr)
				skipped++
				continue
			}
			updated++
			persisted = append(persisted, rec)
		}
		modified = persisted
	}

	if e.cache != nil && len(modified) > 0 {
		dates := make([]string, 0, len(modified))
		for _, rec := range modified {
			dates = append(dates, rec.Date)
		}
		if cerr := e.cache.InvalidateDayDetails(ctx, req.ClientID, dates); cerr != nil {
			e.log.Warn("Failed to invalidate day detail cache", "error", cerr)
		}
	}

	e.log.Info("Cascade finished", "mode", req.Mode, "scope", req.Scope, "updated", updated, "skipped", skipped)
	return Result{UpdatedCount: updated, SkippedCount: skipped}, nil
}

func validate(req Request) error {
	if req.Mode != ModeSwap && req.Mode != ModeUpdate {
		return fmt.Errorf("mode %q: %w", req.Mode, apperr.ErrInvalidArgument)
	}
	if req.Scope != ScopeSameDay && req.Scope != ScopeFutureAll {
		return fmt.Errorf("scope %q: %w", req.Scope, apperr.ErrInvalidArgument)
	}
	if req.Category != schedule.CategoryFitness && req.Category != schedule.CategoryNutrition {
		return fmt.Errorf("category %q: %w", req.Category, apperr.ErrInvalidArgument)
	}
	if req.NewID == 0 {
		return fmt.Errorf("new id required: %w", apperr.ErrInvalidArgument)
	}
	if req.Mode == ModeSwap && req.OldID == 0 {
		return fmt.Errorf("old id required for swap: %w", apperr.ErrInvalidArgument)
	}
	return nil
}

// searchID is the identity used to locate the target entry: the outgoing id
// for a swap, the edited item's own id for an update.
func searchID(req Request) string {
	if req.Mode == ModeSwap {
		return strconv.FormatInt(req.OldID, 10)
	}
	return strconv.FormatInt(req.NewID, 10)
}

func (e *engine) applyToRecord(rec *types.DayRecord, req Request) (bool, error) {
	doc, err := ParseDoc(rec.Doc)
	if err != nil {
		return false, err
	}

	var changed bool
	if req.Category == schedule.CategoryFitness {
		changed, err = applyFitness(doc, req)
	} else {
		changed, err = applyNutrition(doc, req)
	}
	if err != nil || !changed {
		return false, err
	}

	raw, err := doc.Encode()
	if err != nil {
		return false, err
	}
	rec.Doc = raw
	return true, nil
}

func applyFitness(doc Doc, req Request) (bool, error) {
	series, err := doc.Container(FieldSeries)
	if err != nil {
		return false, err
	}
	oldKeys := keysForBase(series, searchID(req))
	if len(oldKeys) == 0 {
		return false, nil
	}

	if req.Mode == ModeUpdate {
		for i, key := range oldKeys {
			occ := occurrenceAt(req.Occurrences, i)
			raw, merr := json.Marshal(occ.Series)
			if merr != nil {
				return false, merr
			}
			series[key] = raw
		}
		return true, doc.SetContainer(FieldSeries, series)
	}

	minutes, err := doc.Container(FieldMinutes)
	if err != nil {
		return false, err
	}
	calories, err := doc.Container(FieldCalories)
	if err != nil {
		return false, err
	}

	newBase := strconv.FormatInt(req.NewID, 10)
	newKeys := swapKeyedContainers(req, newBase, oldKeys,
		container{series, func(occ Occurrence) (json.RawMessage, error) { return json.Marshal(occ.Series) }},
		container{minutes, func(occ Occurrence) (json.RawMessage, error) { return json.Marshal(occ.Minutes) }},
		container{calories, func(occ Occurrence) (json.RawMessage, error) { return json.Marshal(occ.Calories) }},
	)

	if err := doc.SetContainer(FieldSeries, series); err != nil {
		return false, err
	}
	if err := doc.SetContainer(FieldMinutes, minutes); err != nil {
		return false, err
	}
	if err := doc.SetContainer(FieldCalories, calories); err != nil {
		return false, err
	}
	return true, rewriteMemberships(doc, oldKeys, newKeys)
}

func applyNutrition(doc Doc, req Request) (bool, error) {
	macros, err := doc.Container(FieldMacros)
	if err != nil {
		return false, err
	}
	id := searchID(req)

	// The membership containers are polymorphic; locating through them
	// covers records whose macros container was never filled in.
	located := len(keysForBase(macros, id)) > 0
	if !located {
		for _, field := range []string{FieldPending, FieldCompleted} {
			set, perr := ParseMemberSet(doc[field])
			if perr != nil {
				continue
			}
			if _, ok := set.MatchIdentity(id); ok {
				located = true
				break
			}
		}
	}
	if !located {
		return false, nil
	}

	oldKeys := keysForBase(macros, id)
	if req.Mode == ModeUpdate {
		if len(oldKeys) == 0 {
			return false, nil
		}
		ingredients, ierr := doc.Container(FieldIngredients)
		if ierr != nil {
			return false, ierr
		}
		for i, key := range oldKeys {
			occ := occurrenceAt(req.Occurrences, i)
			rawMacros, merr := json.Marshal(occ.Macros)
			if merr != nil {
				return false, merr
			}
			macros[key] = rawMacros
			if occ.Ingredients != nil {
				rawIng, gerr := json.Marshal(occ.Ingredients)
				if gerr != nil {
					return false, gerr
				}
				ingredients[key] = rawIng
			}
		}
		if err := doc.SetContainer(FieldMacros, macros); err != nil {
			return false, err
		}
		return true, doc.SetContainer(FieldIngredients, ingredients)
	}

	ingredients, err := doc.Container(FieldIngredients)
	if err != nil {
		return false, err
	}
	// A swap can reach a record through the membership sets alone; the
	// membership rewrite below still needs old keys to replace.
	if len(oldKeys) == 0 {
		oldKeys = membershipKeysForBase(doc, id)
	}
	newBase := strconv.FormatInt(req.NewID, 10)
	newKeys := swapKeyedContainers(req, newBase, oldKeys,
		container{macros, func(occ Occurrence) (json.RawMessage, error) { return json.Marshal(occ.Macros) }},
		container{ingredients, func(occ Occurrence) (json.RawMessage, error) { return json.Marshal(occ.Ingredients) }},
	)

	if err := doc.SetContainer(FieldMacros, macros); err != nil {
		return false, err
	}
	if err := doc.SetContainer(FieldIngredients, ingredients); err != nil {
		return false, err
	}
	return true, rewriteMemberships(doc, oldKeys, newKeys)
}

type container struct {
	data   map[string]json.RawMessage
	encode func(Occurrence) (json.RawMessage, error)
}

// swapKeyedContainers removes every old key and inserts keys for the new
// identity, renumbered from 1 following the supplied occurrences. It returns
// the new keys aligned index-wise with oldKeys for the membership rewrite.
func swapKeyedContainers(req Request, newBase string, oldKeys []string, containers ...container) []string {
	for _, c := range containers {
		for _, k := range oldKeys {
			delete(c.data, k)
		}
	}
	count := len(req.Occurrences)
	if count == 0 {
		count = len(oldKeys)
	}
	newKeys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		key := BuildKey(newBase, i+1)
		newKeys = append(newKeys, key)
		occ := occurrenceAt(req.Occurrences, i)
		for _, c := range containers {
			raw, err := c.encode(occ)
			if err != nil {
				continue
			}
			c.data[key] = raw
		}
	}
	return newKeys
}

// rewriteMemberships replaces old keys with new ones inside whichever of the
// pending/completed sets contains them, preserving each set's wire shape.
func rewriteMemberships(doc Doc, oldKeys, newKeys []string) error {
	for _, field := range []string{FieldPending, FieldCompleted} {
		raw, ok := doc[field]
		if !ok {
			continue
		}
		set, err := ParseMemberSet(raw)
		if err != nil || set.IsMissing() {
			continue
		}
		touched := false
		for i, oldKey := range oldKeys {
			newKey := ""
			if i < len(newKeys) {
				newKey = newKeys[i]
			} else if len(newKeys) > 0 {
				newKey = newKeys[len(newKeys)-1]
			} else {
				continue
			}
			if set.ReplaceKey(oldKey, newKey) {
				touched = true
			}
		}
		if !touched {
			continue
		}
		encoded, err := set.Encode()
		if err != nil {
			return err
		}
		doc[field] = encoded
	}
	return nil
}

func membershipKeysForBase(doc Doc, base string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, field := range []string{FieldPending, FieldCompleted} {
		set, err := ParseMemberSet(doc[field])
		if err != nil {
			continue
		}
		for _, k := range set.Keys() {
			if b, _, ok := SplitKey(k); ok && b == base && !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

func occurrenceAt(occurrences []Occurrence, i int) Occurrence {
	if len(occurrences) == 0 {
		return Occurrence{}
	}
	if i >= len(occurrences) {
		return occurrences[len(occurrences)-1]
	}
	return occurrences[i]
}
