package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/smartcampus/assistant-cli/internal/client/models"
)

// The backend is loose about primitive types: boolean columns come back as
// 0/1 integers, numeric ids sometimes arrive as strings. The wire DTOs below
// absorb those differences so nothing outside this package has to.

// looseBool accepts true/false, 0/1 and "0"/"1".
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1", `"1"`, `"true"`:
		*b = true
		return nil
	case "false", "0", `"0"`, `"false"`, "null":
		*b = false
		return nil
	}
	return fmt.Errorf("cannot parse %s as bool", data)
}

// looseID accepts both JSON numbers and strings and normalizes to a string.
type looseID string

func (id *looseID) UnmarshalJSON(data []byte) error {
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
		*id = looseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = looseID(n.String())
	return nil
}

type profileDTO struct {
	ID         int64     `json:"id"`
	University string    `json:"university"`
	RollNo     string    `json:"roll_no"`
	FullName   string    `json:"full_name"`
	IsActive   looseBool `json:"is_active"`
	IsAdmin    looseBool `json:"is_admin"`
}

func (d profileDTO) toModel() models.Profile {
	return models.Profile{
		ID:         d.ID,
		University: d.University,
		RollNo:     d.RollNo,
		FullName:   d.FullName,
		IsActive:   bool(d.IsActive),
		IsAdmin:    bool(d.IsAdmin),
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
