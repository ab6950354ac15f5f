// Package intelligence learns from past transactions to speed up entry.
// It indexes descriptions per category so the shell can suggest them.
package intelligence

import (
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
)

// maxSuggestions caps how many completions are offered at once.
const maxSuggestions = 10

// DescriptionIndex holds one trie of descriptions per category.
type DescriptionIndex struct {
	byCategory map[core.Category]*Trie
}

// NewDescriptionIndex builds an index from existing transactions.
func NewDescriptionIndex(transactions []core.Transaction) *DescriptionIndex {
	idx := &DescriptionIndex{byCategory: make(map[core.Category]*Trie)}
	for _, tx := range transactions {
		idx.Add(tx)
	}
	return idx
}

// Add records the description of a single transaction.
func (idx *DescriptionIndex) Add(tx core.Transaction) {
	if strings.TrimSpace(tx.Description) == "" {
		return
	}
	trie := idx.byCategory[tx.Category]
	if trie == nil {
		trie = NewTrie()
		idx.byCategory[tx.Category] = trie
	}
	trie.Insert(tx.Description)
}

// Suggest returns known descriptions in category that start with prefix,
// most used first.
func (idx *DescriptionIndex) Suggest(category core.Category, prefix string) []string {
	trie := idx.byCategory[category]
	if trie == nil {
		return nil
	}
	matches := trie.Find(strings.TrimLeft(prefix, " "))
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Word)
	}
	return suggestions
}

// Size returns the number of distinct descriptions known for category.
func (idx *DescriptionIndex) Size(category core.Category) int {
	if trie := idx.byCategory[category]; trie != nil {
		return trie.Len()
	}
	return 0
}
