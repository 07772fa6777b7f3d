package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Ref is a reference to another record as it travels over the wire.
// The API may render a reference either as a bare id ("u1") or as an
// embedded object ({"_id":"u1","name":"..."}); both decode to the same Ref.
type Ref struct {
	ID   string
	Name string
}

// RefTo builds a reference to the given id
func RefTo(id uuid.UUID) Ref {
	if id == uuid.Nil {
		return Ref{}
	}
	return Ref{ID: id.String()}
}

// IsZero reports whether the reference points nowhere
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// UUID parses the referenced id
func (r Ref) UUID() (uuid.UUID, error) {
	return uuid.Parse(r.ID)
}

type embeddedRef struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// UnmarshalJSON accepts null, a bare id string or an embedded object
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Ref{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	case data[0] == '{':
		var e embeddedRef
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		name := e.Name
		if name == "" {
			name = e.Username
		}
		*r = Ref{ID: e.ID, Name: name}
		return nil
	default:
		return fmt.Errorf("ledger: cannot decode reference from %s", data)
	}
}

// MarshalJSON renders the embedded form when a name is known and the bare id otherwise
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	if r.Name == "" {
		return json.Marshal(r.ID)
	}
	return json.Marshal(embeddedRef{ID: r.ID, Name: r.Name})
}

// ResolveID returns the id behind any supported reference representation.
// It is the one place that knows the shapes a reference can take; callers
// grouping or comparing by reference must go through it.
func ResolveID(ref any) string {
	switch v := ref.(type) {
	case nil:
		return ""
	case Ref:
		return v.ID
	case *Ref:
		if v == nil {
			return ""
		}
		return v.ID
	case string:
		return v
	case uuid.UUID:
		if v == uuid.Nil {
			return ""
		}
		return v.String()
	case *uuid.UUID:
		if v == nil || *v == uuid.Nil {
			return ""
		}
		return v.String()
	case map[string]any:
		if id, ok := v["_id"]; ok {
			return ResolveID(id)
		}
		if id, ok := v["id"]; ok {
			return ResolveID(id)
		}
		return ""
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
