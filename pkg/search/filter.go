package search

import "sync"

// FilterState tracks the active category and keeps a swipeable page view and
// the chip selector strip mutually consistent. Page 0 is always FilterAll;
// pages 1..n map to the available categories in order.
type FilterState struct {
	mu           sync.Mutex
	active       string
	available    []string
	programmatic bool
}

// NewFilterState starts on FilterAll with no available categories.
func NewFilterState() *FilterState {
	return &FilterState{active: FilterAll}
}

// Active returns the active filter.
func (s *FilterState) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Available returns the categories that currently have results.
func (s *FilterState) Available() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.available...)
}

// SetResults updates the available categories after a result-set change. If
// the active filter is no longer available it falls back to FilterAll.
func (s *FilterState) SetResults(available []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.available = append([]string{}, available...)

	if s.active == FilterAll {
		return
	}
	for _, category := range s.available {
		if category == s.active {
			return
		}
	}
	s.active = FilterAll
}

// Select activates a filter from a chip tap and returns the page index the
// view should jump to. The programmatic flag stays set until AckSettled so
// that the page view's own settle callback can't fight the tap.
func (s *FilterState) Select(filter string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pageOf(filter)
	if !ok {
		return 0, false
	}
	s.active = filter
	s.programmatic = true
	return page, true
}

// Settle activates the filter of the page the view landed on after a swipe.
// Ignored while a programmatic change is still in flight: the tap is the
// source of truth until the animation finishes.
func (s *FilterState) Settle(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.programmatic {
		return
	}
	if filter, ok := s.filterAt(page); ok {
		s.active = filter
	}
}

// AckSettled marks the programmatic page change as finished, re-enabling
// swipe settling.
func (s *FilterState) AckSettled() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programmatic = false
}

// Page returns the page index of the active filter.
func (s *FilterState) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pageOf(s.active)
	if !ok {
		return 0
	}
	return page
}

func (s *FilterState) pageOf(filter string) (int, bool) {
	if filter == FilterAll {
		return 0, true
	}
	for i, category := range s.available {
		if category == filter {
			return i + 1, true
		}
	}
	return 0, false
}

func (s *FilterState) filterAt(page int) (string, bool) {
	if page == 0 {
		return FilterAll, true
	}
	if page < 1 || page > len(s.available) {
		return "", false
	}
	return s.available[page-1], true
}

// ChipScrollOffset returns the minimum scroll delta that brings a chip fully
// into the visible strip: negative to scroll back, positive to scroll
// forward, zero when the chip is already visible. It never re-centers.
func ChipScrollOffset(chipStart, chipEnd, viewStart, viewEnd int) int {
	if chipStart < viewStart {
		return chipStart - viewStart
	}
	if chipEnd > viewEnd {
		return chipEnd - viewEnd
	}
	return 0
}
