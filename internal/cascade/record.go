package cascade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Keyed container fields of the per-day document. Keys inside them encode
// "<baseId>_<ordinal>".
const (
	FieldSeries      = "detalles_series"
	FieldMinutes     = "minutos_json"
	FieldCalories    = "calorias_json"
	FieldMacros      = "macros"
	FieldIngredients = "ingredientes"
	FieldPending     = "ejercicios_pendientes"
	FieldCompleted   = "ejercicios_completados"
)

// Doc is the decoded per-day record document. Values stay raw; only the
// fields a cascade touches are interpreted.
type Doc map[string]json.RawMessage

func ParseDoc(raw []byte) (Doc, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Doc{}, nil
	}
	var d Doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("day record document: %w", err)
	}
	if d == nil {
		d = Doc{}
	}
	return d, nil
}

func (d Doc) Encode() ([]byte, error) { return json.Marshal(d) }

// Container decodes one keyed container field. A missing or null field
// yields an empty container.
func (d Doc) Container(field string) (map[string]json.RawMessage, error) {
	raw, ok := d[field]
	if !ok || isNull(raw) {
		return map[string]json.RawMessage{}, nil
	}
	var c map[string]json.RawMessage
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("container %s: %w", field, err)
	}
	if c == nil {
		c = map[string]json.RawMessage{}
	}
	return c, nil
}

func (d Doc) SetContainer(field string, c map[string]json.RawMessage) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	d[field] = raw
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// SplitKey splits a composite "<baseId>_<ordinal>" key on its last
// underscore.
func SplitKey(key string) (base string, ordinal int, ok bool) {
	i := strings.LastIndex(key, "_")
	if i <= 0 || i == len(key)-1 {
		return "", 0, false
	}
	ord, err := strconv.Atoi(key[i+1:])
	if err != nil {
		return "", 0, false
	}
	return key[:i], ord, true
}

func BuildKey(base string, ordinal int) string {
	return base + "_" + strconv.Itoa(ordinal)
}

// keysForBase returns the container keys belonging to one base id, ordered
// by ordinal.
func keysForBase(c map[string]json.RawMessage, base string) []string {
	type keyed struct {
		key string
		ord int
	}
	var found []keyed
	for k := range c {
		if b, ord, ok := SplitKey(k); ok && b == base {
			found = append(found, keyed{key: k, ord: ord})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ord < found[j].ord })
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.key
	}
	return out
}
