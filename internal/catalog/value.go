package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Answer value union ---

// ValueKind discriminates the shape of an answer value.
type ValueKind string

const (
	KindText ValueKind = "text"
	KindBool ValueKind = "bool"
	KindList ValueKind = "list"
)

// Value is the tagged union for answer values. A value is a string, a
// boolean, or an ordered list of strings — the shape must match the
// owning question's declared type. It marshals to its native JSON shape
// (string, bool, or array), not to a wrapper object.
type Value struct {
	Kind ValueKind
	Text string
	Bool bool
	List []string
}

// TextValue wraps a string as a text value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// BoolValue wraps a boolean as a bool value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// ListValue wraps an ordered list of option strings as a list value.
func ListValue(items ...string) Value {
	return Value{Kind: KindList, List: items}
}

// IsEmpty reports whether the value carries no content. Booleans are
// never empty — false is a real answer.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindBool:
		return false
	case KindList:
		return len(v.List) == 0
	default:
		return strings.TrimSpace(v.Text) == ""
	}
}

// Equals reports strict equality on the primitive form: kinds must match,
// booleans compare as booleans, lists compare element-wise in order.
func (v Value) Equals(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == other.Bool
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != other.List[i] {
				return false
			}
		}
		return true
	default:
		return v.Text == other.Text
	}
}

// String renders the primitive form: the text itself, "true"/"false"
// for booleans, and list items joined with ", ".
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindList:
		return strings.Join(v.List, ", ")
	default:
		return v.Text
	}
}

// MarshalJSON emits the native shape: string, bool, or string array.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON detects the shape: bool, array, or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = ListValue(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextValue(s)
		return nil
	}
	return fmt.Errorf("value must be a string, boolean, or string array, got %s", string(data))
}

// UnmarshalYAML detects the shape in catalog files: !!bool scalars become
// bool values, sequences become list values, everything else is text.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}
			*v = BoolValue(b)
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = ListValue(list...)
		return nil
	default:
		return fmt.Errorf("value must be a scalar or sequence, got yaml kind %d", node.Kind)
	}
}

// MarshalYAML emits the native YAML shape, mirroring MarshalJSON.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case KindBool:
		return v.Bool, nil
	case KindList:
		return v.List, nil
	default:
		return v.Text, nil
	}
}
