package editor

import (
	"fmt"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// Snapshot is the serializable form of an editor, used to keep a draft
// between requests. Exactly one of New and Existing is set.
type Snapshot struct {
	Mode      Mode           `json:"mode"`
	New       *NewDraft      `json:"new,omitempty"`
	Existing  *ExistingDraft `json:"existing,omitempty"`
	Reference ReferenceData  `json:"reference"`
}

func (e *OrderEditor) Snapshot() Snapshot {
	s := Snapshot{Mode: e.Mode(), Reference: e.ref.clone()}
	switch d := e.draft.(type) {
	case *NewDraft:
		s.New = d.clone()
	case *ExistingDraft:
		s.Existing = d.clone()
	}
	return s
}

// Restore rebuilds an editor from a snapshot.
func Restore(s Snapshot, submitter OrderSubmitter) (*OrderEditor, error) {
	e := &OrderEditor{ref: s.Reference.clone(), submitter: submitter}

	switch s.Mode {
	case ModeNew:
		if s.New == nil {
			return nil, fmt.Errorf("snapshot in mode %s has no draft", s.Mode)
		}
		d := s.New.clone()
		if d.Items == nil {
			d.Items = []models.LineItemRequest{}
		}
		e.draft = d
	case ModeExisting:
		if s.Existing == nil || s.Existing.ID == 0 {
			return nil, fmt.Errorf("snapshot in mode %s has no order", s.Mode)
		}
		e.draft = s.Existing.clone()
	default:
		return nil, fmt.Errorf("unknown draft mode %q", s.Mode)
	}
	return e, nil
}
