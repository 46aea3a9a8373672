package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref - ссылка вида (id, подпись), в которой источник может прислать false, null,
// пару [id, "label"], одиночный [id] или просто id.
type Ref struct {
	ID    int64
	Label string
	// Set ложно, если ссылка отсутствует (false/null)
	Set bool
}

// NewRef создаёт заполненную ссылку
func NewRef(id int64, label string) Ref {
	return Ref{ID: id, Label: label, Set: true}
}

// IsZero сообщает, что ссылка отсутствует
func (r Ref) IsZero() bool {
	return !r.Set
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("false")) {
		return nil
	}

	switch data[0] {
	case '[':
		var parts []json.RawMessage
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("decode ref: %w", err)
		}
		if len(parts) == 0 {
			return nil
		}
		r.Set = true
		if id, ok := decodeID(parts[0]); ok {
			r.ID = id
		}
		if len(parts) > 1 {
			var label string
			if err := json.Unmarshal(parts[1], &label); err == nil {
				r.Label = label
			}
		}
	case '"':
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return fmt.Errorf("decode ref: %w", err)
		}
		r.Set = true
		r.Label = label
	case 't':
		// true не несёт идентификатора: ссылка есть, но разрешить её нельзя
		r.Set = true
	default:
		id, ok := decodeID(data)
		if !ok {
			return fmt.Errorf("decode ref: unexpected value %s", data)
		}
		r.Set = true
		r.ID = id
	}

	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Set {
		return []byte("false"), nil
	}
	if r.Label == "" {
		return json.Marshal([]any{r.ID})
	}
	return json.Marshal([]any{r.ID, r.Label})
}

func decodeID(raw json.RawMessage) (int64, bool) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return 0, false
	}
	id, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return id, true
}

// ManagerIDs - список идентификаторов утверждающих руководителей; источник
// присылает false вместо пустого списка.
type ManagerIDs []int64

func (m *ManagerIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("false")) {
		*m = nil
		return nil
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("decode approve_manager: %w", err)
	}
	*m = ids
	return nil
}

// optionalString - строковое поле источника; false и null означают пустую строку
type optionalString string

func (s *optionalString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("false")) {
		*s = ""
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = optionalString(v)
	return nil
}

func (r *DepartmentRecord) UnmarshalJSON(data []byte) error {
	type plain DepartmentRecord
	var aux struct {
		plain
		Name optionalString `json:"name"`
		Code optionalString `json:"sort_name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decode department: %w", err)
	}

	*r = DepartmentRecord(aux.plain)
	r.Name = string(aux.Name)
	r.Code = string(aux.Code)
	return nil
}
