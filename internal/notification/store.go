package notification

import (
	"slices"

	"PortfolioSentinel/internal/model"
)

// Store is the inbox of fired-alert notifications. Records are kept in
// insertion order and sorted newest-first on read. It is not safe for
// concurrent use.
type Store struct {
	items []model.Notification
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a notification.
func (s *Store) Append(n model.Notification) {
	s.items = append(s.items, n)
}

// MarkRead sets the read flag of one notification.
func (s *Store) MarkRead(id string) (model.Notification, error) {
	i := s.find(id)
	if i < 0 {
		return model.Notification{}, model.NotFound("notification", id)
	}
	s.items[i].Read = true
	return s.items[i], nil
}

// MarkAllRead sets every read flag and returns how many were unread.
func (s *Store) MarkAllRead() int {
	n := 0
	for i := range s.items {
		if !s.items[i].Read {
			n++
		}
		s.items[i].Read = true
	}
	return n
}

// Remove deletes one notification.
func (s *Store) Remove(id string) error {
	i := s.find(id)
	if i < 0 {
		return model.NotFound("notification", id)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// Get returns the notification with the given id.
func (s *Store) Get(id string) (model.Notification, error) {
	i := s.find(id)
	if i < 0 {
		return model.Notification{}, model.NotFound("notification", id)
	}
	return s.items[i], nil
}

// UnreadCount counts notifications not yet read.
func (s *Store) UnreadCount() int {
	n := 0
	for _, it := range s.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// List returns notifications newest first. Equal timestamps keep insertion order.
func (s *Store) List() []model.Notification {
	out := slices.Clone(s.items)
	slices.SortStableFunc(out, func(a, b model.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// Len returns the number of notifications.
func (s *Store) Len() int { return len(s.items) }

func (s *Store) find(id string) int {
	return slices.IndexFunc(s.items, func(n model.Notification) bool { return n.ID == id })
}
