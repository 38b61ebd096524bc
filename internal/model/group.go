package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GroupResult группа, найденная поиском на портале
type GroupResult struct {
	ID   GroupID `json:"id"`
	Name string  `json:"text"`
}

// GroupID идентификатор группы; портал отдаёт его то числом, то строкой
type GroupID string

func (id *GroupID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = GroupID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("group id: %w", err)
	}
	*id = GroupID(n.String())
	return nil
}

func (id GroupID) String() string {
	return string(id)
}
