package mailbox

import "encoding/json"

type snapshotJSON struct {
	Messages []EmailSummary `json:"messages,omitempty"`
	Cursor   *int           `json:"cursor,omitempty"`
}

// MarshalJSON omits the cursor field entirely while no selection is made.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{Messages: s.Messages}
	if s.Cursor != NoCursor {
		c := s.Cursor
		out.Cursor = &c
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores an absent cursor as NoCursor and discards any
// cursor that no longer fits the list.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	s.Messages = in.Messages
	s.Cursor = NoCursor
	if in.Cursor != nil && *in.Cursor >= 0 && *in.Cursor < len(in.Messages) {
		s.Cursor = *in.Cursor
	}

	return nil
}
