package cascade

import (
	"encoding/json"
	"fmt"
	"sort"
)

type memberShape int

const (
	shapeMissing memberShape = iota
	shapeArray
	shapeMap
	shapeWrappedArray
	shapeWrappedMap
)

const wrapperField = "ejercicios"

// MemberSet normalizes the polymorphic pending/completed containers: an
// array of composite keys, a map of key to metadata, or either of those
// wrapped under {"ejercicios": ...}. The original shape is remembered so an
// untouched or rewritten set re-encodes the way it arrived.
type MemberSet struct {
	shape memberShape
	keys  []string
	meta  map[string]json.RawMessage
}

// ParseMemberSet tries the known shapes in order and returns the first that
// decodes structurally.
func ParseMemberSet(raw json.RawMessage) (*MemberSet, error) {
	if isNull(raw) {
		return &MemberSet{shape: shapeMissing, meta: map[string]json.RawMessage{}}, nil
	}

	var asArray []string
	if err := json.Unmarshal(raw, &asArray); err == nil {
		return &MemberSet{shape: shapeArray, keys: asArray, meta: map[string]json.RawMessage{}}, nil
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return nil, fmt.Errorf("member set: unsupported encoding")
	}

	if inner, ok := asObject[wrapperField]; ok && len(asObject) == 1 {
		var innerArray []string
		if err := json.Unmarshal(inner, &innerArray); err == nil {
			return &MemberSet{shape: shapeWrappedArray, keys: innerArray, meta: map[string]json.RawMessage{}}, nil
		}
		var innerMap map[string]json.RawMessage
		if err := json.Unmarshal(inner, &innerMap); err == nil {
			return newMapSet(shapeWrappedMap, innerMap), nil
		}
		return nil, fmt.Errorf("member set: unsupported %q encoding", wrapperField)
	}

	return newMapSet(shapeMap, asObject), nil
}

func newMapSet(shape memberShape, m map[string]json.RawMessage) *MemberSet {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &MemberSet{shape: shape, keys: keys, meta: m}
}

func (m *MemberSet) Keys() []string { return append([]string(nil), m.keys...) }

// MatchIdentity returns the first member whose key's base segment, or whose
// metadata id/ejercicio_id field, equals the searched identity.
func (m *MemberSet) MatchIdentity(id string) (string, bool) {
	for _, k := range m.keys {
		if base, _, ok := SplitKey(k); ok && base == id {
			return k, true
		}
		if meta, ok := m.meta[k]; ok && !isNull(meta) {
			var probe struct {
				ID          json.Number `json:"id"`
				EjercicioID json.Number `json:"ejercicio_id"`
			}
			if err := json.Unmarshal(meta, &probe); err == nil {
				if probe.ID.String() == id || probe.EjercicioID.String() == id {
					return k, true
				}
			}
		}
	}
	return "", false
}

// ReplaceKey rewrites one member in place, keeping its position and any
// metadata attached to it.
func (m *MemberSet) ReplaceKey(oldKey, newKey string) bool {
	for i, k := range m.keys {
		if k != oldKey {
			continue
		}
		m.keys[i] = newKey
		if meta, ok := m.meta[oldKey]; ok {
			delete(m.meta, oldKey)
			m.meta[newKey] = meta
		}
		return true
	}
	return false
}

// Encode re-serializes the set in its original shape.
func (m *MemberSet) Encode() (json.RawMessage, error) {
	switch m.shape {
	case shapeMissing:
		return json.RawMessage("null"), nil
	case shapeArray, shapeWrappedArray:
		raw, err := json.Marshal(m.keys)
		if err != nil {
			return nil, err
		}
		if m.shape == shapeWrappedArray {
			return json.Marshal(map[string]json.RawMessage{wrapperField: raw})
		}
		return raw, nil
	default:
		obj := make(map[string]json.RawMessage, len(m.keys))
		for _, k := range m.keys {
			meta, ok := m.meta[k]
			if !ok || len(meta) == 0 {
				meta = json.RawMessage("{}")
			}
			obj[k] = meta
		}
		raw, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		if m.shape == shapeWrappedMap {
			return json.Marshal(map[string]json.RawMessage{wrapperField: raw})
		}
		return raw, nil
	}
}

func (m *MemberSet) IsMissing() bool { return m.shape == shapeMissing }
