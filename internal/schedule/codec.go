package schedule

import (
	"bytes"
	"encoding/json"
)

// dayDoc is the object wire shape of a day. Legacy documents store a bare
// item array instead; UnmarshalJSON accepts both.
type dayDoc struct {
	Items      []Item         `json:"items"`
	BlockNames map[int]string `json:"block_names"`
	BlockCount int            `json:"block_count"`
}

func (d *Day) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*d = Day{Items: items, BlockNames: map[int]string{}, BlockCount: 1}
		return nil
	}
	var doc dayDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	if doc.BlockNames == nil {
		doc.BlockNames = map[int]string{}
	}
	*d = Day{Items: doc.Items, BlockNames: doc.BlockNames, BlockCount: doc.BlockCount}
	return nil
}

// DecodeSchedule parses a stored schedule document. A nil or empty document
// yields an empty schedule.
func DecodeSchedule(raw []byte) (Schedule, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Schedule{}, nil
	}
	var s Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = Schedule{}
	}
	return s, nil
}

// EncodeSchedule serializes the schedule in its canonical object form.
func EncodeSchedule(s Schedule) ([]byte, error) {
	return json.Marshal(s)
}
