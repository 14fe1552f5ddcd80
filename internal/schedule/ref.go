package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const tempPrefix = "tmp:"

// EntityRef is the identity of a catalog item as seen by the planner: either
// a server-assigned integer id or a client-generated temp id awaiting bulk
// persistence. The zero value means "no identity".
type EntityRef struct {
	id   int64
	temp string
}

func PersistedRef(id int64) EntityRef { return EntityRef{id: id} }

func LocalRef(tempID string) EntityRef { return EntityRef{temp: tempID} }

func (r EntityRef) IsZero() bool { return r.id == 0 && r.temp == "" }

func (r EntityRef) IsLocal() bool { return r.id == 0 && r.temp != "" }

func (r EntityRef) PersistedID() (int64, bool) { return r.id, r.id != 0 }

func (r EntityRef) TempID() (string, bool) { return r.temp, r.IsLocal() }

// String renders the canonical wire form: the decimal id for persisted refs,
// "tmp:<id>" for local ones, "" for the zero ref.
func (r EntityRef) String() string {
	if r.id != 0 {
		return strconv.FormatInt(r.id, 10)
	}
	if r.temp != "" {
		return tempPrefix + r.temp
	}
	return ""
}

// ParseRef accepts the wire forms produced by String plus the legacy
// client-side conventions (bare numerics are persisted ids, anything else is
// a temp id).
func ParseRef(s string) EntityRef {
	s = strings.TrimSpace(s)
	if s == "" {
		return EntityRef{}
	}
	if strings.HasPrefix(s, tempPrefix) {
		return LocalRef(s[len(tempPrefix):])
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil && id != 0 {
		return PersistedRef(id)
	}
	return LocalRef(s)
}

func (r EntityRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *EntityRef) UnmarshalJSON(data []byte) error {
	var asNum int64
	if err := json.Unmarshal(data, &asNum); err == nil {
		if asNum != 0 {
			*r = PersistedRef(asNum)
		} else {
			*r = EntityRef{}
		}
		return nil
	}
	var asStr string
	if err := json.Unmarshal(data, &asStr); err != nil {
		return fmt.Errorf("entity ref: unsupported encoding %s", string(data))
	}
	*r = ParseRef(asStr)
	return nil
}
