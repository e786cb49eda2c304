package catalog

// Section is one open hierarchical container: its source type label
// ("Книга", "Сборник", ...) plus code and name.
type Section struct {
	Type string
	Code string
	Name string
}

// SectionStack tracks the currently-open containers while a flat stream
// of open/close tag events is consumed, so a leaf can be attributed to
// its enclosing hierarchy without materializing a tree.
//
// Both catalog families keep at most one open container per type label
// at any time. Pop on an empty stack is a no-op: real-world catalog
// nesting is not always clean, and aborting on a stray close event would
// lose the rest of an otherwise usable file.
type SectionStack struct {
	items []Section
}

func (s *SectionStack) Push(sec Section) {
	s.items = append(s.items, sec)
}

func (s *SectionStack) Pop() {
	if len(s.items) == 0 {
		return
	}
	s.items = s.items[:len(s.items)-1]
}

func (s *SectionStack) Len() int {
	return len(s.items)
}

// Current returns the most recently pushed section whose type label
// equals typ, or false when no such container is open.
func (s *SectionStack) Current(typ string) (Section, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Type == typ {
			return s.items[i], true
		}
	}
	return Section{}, false
}
