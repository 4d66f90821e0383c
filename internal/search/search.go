// Package search ranks already-loaded entities against a query string.
// It filters client-side within a loaded list; server-side search goes
// through the list filters instead.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/lenscope/lenscope/internal/domain"
)

// Match pairs a source index with its rank (lower = better)
type Match struct {
	Index int
	Rank  int
}

// rank runs normalized case-folding fuzzy matching over labels and
// returns matches sorted best-first
func rank(query string, labels []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var matches []Match
	for i, label := range labels {
		r := fuzzy.RankMatchNormalizedFold(query, label)
		if r < 0 {
			continue
		}
		matches = append(matches, Match{Index: i, Rank: r})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rank < matches[j].Rank
	})
	return matches
}

// Accounts returns indexes of accounts matching the query, best-first.
// The handle, display name and address all count as match targets.
func Accounts(query string, accounts []domain.Account) []Match {
	labels := make([]string, len(accounts))
	for i, a := range accounts {
		labels[i] = a.Username.LocalName + " " + a.Name + " " + a.Address
	}
	return rank(query, labels)
}

// Posts returns indexes of posts matching the query, best-first.
// Content and author labels count as match targets.
func Posts(query string, posts []domain.Post) []Match {
	labels := make([]string, len(posts))
	for i, p := range posts {
		display := p.Display()
		labels[i] = display.Content + " " + display.Author.Username.LocalName + " " + display.Author.Name
	}
	return rank(query, labels)
}
