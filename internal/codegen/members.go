package codegen

import "go.abhg.dev/phpgen/internal/phpname"

// memberSet is an insertion-ordered collection of named members.
//
// Members are stored under a key derived from their name.
// For case-insensitive collections the key is the case-folded name;
// the member itself keeps the name as it was given.
type memberSet[T any] struct {
	fold  bool
	keys  []string
	items map[string]T
}

func newMemberSet[T any](fold bool) memberSet[T] {
	return memberSet[T]{fold: fold}
}

func (s *memberSet[T]) key(name string) string {
	if s.fold {
		return phpname.Fold(name)
	}
	return name
}

func (s *memberSet[T]) Len() int { return len(s.keys) }

func (s *memberSet[T]) Has(name string) bool {
	_, ok := s.items[s.key(name)]
	return ok
}

func (s *memberSet[T]) Get(name string) (T, bool) {
	v, ok := s.items[s.key(name)]
	return v, ok
}

// Add adds a member.
// It reports false and leaves the set unchanged
// if the name is already taken.
func (s *memberSet[T]) Add(name string, v T) bool {
	k := s.key(name)
	if _, ok := s.items[k]; ok {
		return false
	}
	if s.items == nil {
		s.items = make(map[string]T)
	}
	s.items[k] = v
	s.keys = append(s.keys, k)
	return true
}

// Remove removes the member with the given name, if any.
func (s *memberSet[T]) Remove(name string) bool {
	k := s.key(name)
	if _, ok := s.items[k]; !ok {
		return false
	}
	delete(s.items, k)
	for i, key := range s.keys {
		if key == k {
			s.keys = append(s.keys[:i:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Values returns the members in insertion order.
func (s *memberSet[T]) Values() []T {
	if len(s.keys) == 0 {
		return nil
	}
	vs := make([]T, len(s.keys))
	for i, k := range s.keys {
		vs[i] = s.items[k]
	}
	return vs
}
