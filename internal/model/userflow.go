package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserFlow is a node/edge diagram of how a user moves through the product.
// It is stored as a single JSON value on its Idea and only ever replaced whole.
//
// Edges are not checked against node ids.
type UserFlow struct {
	Nodes []FlowNode `json:"nodes"`
	Edges []FlowEdge `json:"edges"`
}

type FlowNode struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
}

type FlowEdge struct {
	ID        string  `json:"id"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Label     *string `json:"label,omitempty"`
	Condition *string `json:"condition,omitempty"`
}

// Value implements driver.Valuer so a UserFlow can be written to a TEXT column.
// Nil slices are stored as empty arrays.
func (f UserFlow) Value() (driver.Value, error) {
	if f.Nodes == nil {
		f.Nodes = []FlowNode{}
	}
	if f.Edges == nil {
		f.Edges = []FlowEdge{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding user flow: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for the JSON-encoded column.
func (f *UserFlow) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*f = UserFlow{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("decoding user flow: unsupported column type %T", src)
	}

	var decoded UserFlow
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decoding user flow: %w", err)
	}
	if decoded.Nodes == nil {
		decoded.Nodes = []FlowNode{}
	}
	if decoded.Edges == nil {
		decoded.Edges = []FlowEdge{}
	}
	*f = decoded
	return nil
}
