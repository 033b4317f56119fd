package refstore

import "github.com/google/uuid"

// Reference records one confirmed paste: the pasted text and the
// citation the user attached to it. The ID is also carried by the
// span embedded in the document, so either side can locate the other.
type Reference struct {
	ID         string
	SourceText string
	Citation   string
}

// Store is an ordered collection of references. It is a projection of
// the spans present in the document: Reconcile drops any reference
// whose span has been edited away, and nothing ever recreates a span
// from a reference.
type Store struct {
	refs []Reference
}

func New() *Store {
	return &Store{}
}

func (s *Store) Add(sourceText, citation string) Reference {
	ref := Reference{
		ID:         uuid.NewString(),
		SourceText: sourceText,
		Citation:   citation,
	}
	s.refs = append(s.refs, ref)
	return ref
}

// Restore appends a reference carrying its original ID, used when
// loading a saved session. References without an ID are ignored.
func (s *Store) Restore(ref Reference) {
	if ref.ID == "" {
		return
	}
	s.refs = append(s.refs, ref)
}

func (s *Store) Remove(id string) bool {
	for i, r := range s.refs {
		if r.ID == id {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Get(id string) (Reference, bool) {
	for _, r := range s.refs {
		if r.ID == id {
			return r, true
		}
	}
	return Reference{}, false
}

// Reconcile retains only references whose id is in present, preserving
// order. Returns the number of orphaned references dropped.
func (s *Store) Reconcile(present map[string]bool) int {
	kept := s.refs[:0]
	for _, r := range s.refs {
		if present[r.ID] {
			kept = append(kept, r)
		}
	}
	dropped := len(s.refs) - len(kept)
	s.refs = kept
	return dropped
}

func (s *Store) List() []Reference {
	out := make([]Reference, len(s.refs))
	copy(out, s.refs)
	return out
}

func (s *Store) Len() int {
	return len(s.refs)
}

func (s *Store) Clear() {
	s.refs = nil
}
