package store

import "slices"

// Contact returns a copy of the named contact.
func (s *Store) Contact(name string) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.lookup(name)
	if c == nil {
		return Contact{}, false
	}
	return *c, true
}

// SortedContacts returns all contacts, most recent message first. Contacts
// with equal timestamps keep their insertion order.
func (s *Store) SortedContacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted()
}

// NewContacts returns the contacts introduced by live messages that have not
// been selected yet, in SortedContacts order.
func (s *Store) NewContacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterNew(s.sorted())
}

// NewContactsCount returns the size of the new-contact set.
func (s *Store) NewContactsCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.newContacts)
}

// IsNew reports whether name is in the new-contact set.
func (s *Store) IsNew(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.newContacts[name]
	return ok
}

// VisibleContacts returns the list for the active tab.
func (s *Store) VisibleContacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sorted := s.sorted()
	if s.tab == TabNew {
		return s.filterNew(sorted)
	}
	return sorted
}

// TotalUnreadCount sums the unread counts of all contacts.
func (s *Store) TotalUnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, c := range s.contacts {
		total += c.UnreadCount
	}
	return total
}

func (s *Store) sorted() []Contact {
	out := make([]Contact, len(s.contacts))
	for i, c := range s.contacts {
		out[i] = *c
	}
	slices.SortStableFunc(out, func(a, b Contact) int {
		return b.LastMessageTime.Compare(a.LastMessageTime)
	})
	return out
}

func (s *Store) filterNew(sorted []Contact) []Contact {
	out := make([]Contact, 0, len(s.newContacts))
	for _, c := range sorted {
		if _, ok := s.newContacts[c.Name]; ok {
			out = append(out, c)
		}
	}
	return out
}
