package intelligence

import (
	"sort"
	"strings"
)

// trieNode is one rune of a stored description, keyed case-insensitively.
type trieNode struct {
	children map[rune]*trieNode
	entries  map[string]int // original spelling -> occurrences ending here
}

// Trie indexes descriptions for case-insensitive prefix lookup and keeps
// how often each spelling was inserted.
type Trie struct {
	root *trieNode
	size int
}

// NewTrie creates a new empty Trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Insert records one occurrence of word. Blank words are ignored.
func (t *Trie) Insert(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	current := t.root
	for _, char := range strings.ToLower(word) {
		next := current.children[char]
		if next == nil {
			next = newTrieNode()
			current.children[char] = next
		}
		current = next
	}
	if current.entries == nil {
		current.entries = make(map[string]int)
	}
	if current.entries[word] == 0 {
		t.size++
	}
	current.entries[word]++
}

// Len returns the number of distinct words stored.
func (t *Trie) Len() int {
	return t.size
}

// Match is a stored word and how often it was inserted.
type Match struct {
	Word      string
	Frequency int
}

// Find returns every stored word starting with prefix, ignoring case, most
// frequent first and alphabetical among equals.
func (t *Trie) Find(prefix string) []Match {
	current := t.root
	for _, char := range strings.ToLower(prefix) {
		current = current.children[char]
		if current == nil {
			return []Match{}
		}
	}

	results := make([]Match, 0)
	collect(current, &results)
	sort.Slice(results, func(i, j int) bool {
		if results[i].Frequency != results[j].Frequency {
			return results[i].Frequency > results[j].Frequency
		}
		return results[i].Word < results[j].Word
	})
	return results
}

// collect walks the subtree depth-first gathering complete words.
func collect(node *trieNode, results *[]Match) {
	for word, n := range node.entries {
		*results = append(*results, Match{Word: word, Frequency: n})
	}
	for _, child := range node.children {
		collect(child, results)
	}
}
