// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package faq

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry is one keyword/response pair. Keywords are matched case-insensitively
// as substrings of the inbound text.
type Entry struct {
	Keyword  string `json:"keyword"`
	Response string `json:"response"`
}

// Table is an immutable ordered list of entries. Order matters: when a message
// contains more than one keyword, the first entry in declared order wins.
type Table struct {
	entries []Entry
}

// New builds a table from entries. Keywords must be lower-case, unique and
// non-empty; responses must be non-empty.
func New(entries []Entry) (*Table, error) {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		kw := e.Keyword
		if kw == "" {
			return nil, fmt.Errorf("entry %d: empty keyword", i)
		}
		if kw != strings.ToLower(kw) {
			return nil, fmt.Errorf("entry %d: keyword %q must be lower-case", i, kw)
		}
		if e.Response == "" {
			return nil, fmt.Errorf("entry %d (%q): empty response", i, kw)
		}
		if _, dup := seen[kw]; dup {
			return nil, fmt.Errorf("entry %d: duplicate keyword %q", i, kw)
		}
		seen[kw] = struct{}{}
	}

	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Table{entries: copied}, nil
}

// Load reads a table from a JSON array of entries. An array rather than an
// object, so the file's declared order is the tie-break order.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading faq file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing faq file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("faq file %s contains no entries", path)
	}

	return New(entries)
}

// Default returns the built-in support table.
func Default() *Table {
	t, err := New([]Entry{
		{"hours", "Our business hours are Monday to Friday, 9 AM to 6 PM EST. We're closed on weekends and public holidays."},
		{"location", "We're located at 123 Main Street, Suite 100, New York, NY 10001. You can also reach us online 24/7!"},
		{"contact", "You can contact us via:\n📧 Email: support@company.com\n📞 Phone: +1 (555) 123-4567\n💬 This chat (24/7 AI support)"},
		{"shipping", "We offer free shipping on orders over $50. Standard shipping takes 3-5 business days, and express shipping takes 1-2 business days."},
		{"returns", "We accept returns within 30 days of purchase. Items must be unused and in original packaging. Contact us to initiate a return."},
		{"payment", "We accept all major credit cards, PayPal, Apple Pay, and Google Pay. All transactions are secure and encrypted."},
	})
	if err != nil {
		panic("invalid built-in faq table: " + err.Error())
	}
	return t
}

// Match scans the entries in declared order and returns the first whose
// keyword is contained in the lower-cased text.
func (t *Table) Match(text string) (Entry, bool) {
	lower := strings.ToLower(text)
	for _, e := range t.entries {
		if strings.Contains(lower, e.Keyword) {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the table in declared order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
