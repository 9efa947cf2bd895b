package intel

// Kind classifies a confirmed intelligence item.
type Kind string

const (
	KindBankAccount       Kind = "bankAccount"
	KindUPIID             Kind = "upiId"
	KindPhoneNumber       Kind = "phoneNumber"
	KindPhishingLink      Kind = "phishingLink"
	KindSuspiciousKeyword Kind = "suspiciousKeyword"
)

// HighValueKinds are the kinds worth reporting on their own; keywords only
// corroborate them.
var HighValueKinds = []Kind{KindBankAccount, KindUPIID, KindPhoneNumber, KindPhishingLink}

// Candidate is a provisional extractor match before validation.
type Candidate struct {
	Kind Kind
	Raw  string
}

// Item is a confirmed, normalized piece of intelligence.
type Item struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// Key is the dedup identity of an item: one key, one item per session.
func (i Item) Key() string {
	return string(i.Kind) + ":" + i.Value
}

// Set is an insertion-ordered collection of items with (kind, value) dedup.
type Set struct {
	items []Item
	index map[string]struct{}
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]struct{})}
}

// Add inserts an item unless its key is already present. Reports whether the
// set grew.
func (s *Set) Add(item Item) bool {
	if _, ok := s.index[item.Key()]; ok {
		return false
	}
	s.index[item.Key()] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Merge adds every item not yet present and returns how many were new.
// Repeated sightings across turns never inflate the set.
func (s *Set) Merge(items []Item) int {
	added := 0
	for _, item := range items {
		if s.Add(item) {
			added++
		}
	}
	return added
}

// Items returns the confirmed items in insertion order.
func (s *Set) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct items.
func (s *Set) Len() int {
	return len(s.items)
}

// KindCount returns how many distinct kinds have at least one item.
func (s *Set) KindCount() int {
	seen := make(map[Kind]struct{}, len(s.items))
	for _, item := range s.items {
		seen[item.Kind] = struct{}{}
	}
	return len(seen)
}

// HighValueCount counts items of the high-value kinds.
func (s *Set) HighValueCount() int {
	n := 0
	for _, item := range s.items {
		for _, k := range HighValueKinds {
			if item.Kind == k {
				n++
				break
			}
		}
	}
	return n
}

// Clone deep-copies the set.
func (s *Set) Clone() *Set {
	clone := &Set{
		items: make([]Item, len(s.items)),
		index: make(map[string]struct{}, len(s.index)),
	}
	copy(clone.items, s.items)
	for k := range s.index {
		clone.index[k] = struct{}{}
	}
	return clone
}

// Report is the grouped-by-kind view sent to callers and callbacks.
type Report struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// Report groups the set by kind, preserving insertion order within each kind.
func (s *Set) Report() Report {
	r := Report{
		BankAccounts:       []string{},
		UPIIDs:             []string{},
		PhishingLinks:      []string{},
		PhoneNumbers:       []string{},
		SuspiciousKeywords: []string{},
	}
	for _, item := range s.items {
		switch item.Kind {
		case KindBankAccount:
			r.BankAccounts = append(r.BankAccounts, item.Value)
		case KindUPIID:
			r.UPIIDs = append(r.UPIIDs, item.Value)
		case KindPhishingLink:
			r.PhishingLinks = append(r.PhishingLinks, item.Value)
		case KindPhoneNumber:
			r.PhoneNumbers = append(r.PhoneNumbers, item.Value)
		case KindSuspiciousKeyword:
			r.SuspiciousKeywords = append(r.SuspiciousKeywords, item.Value)
		}
	}
	return r
}
