package commands

import (
	"context"
	"sort"
	"strings"

	"launchtree/internal/application"
	"launchtree/internal/domain"
)

// ScoredNode is a directly matching node with a relevance score
type ScoredNode struct {
	Node  *domain.Node
	Depth int
	Score int
}

// SearchResult holds both views of a query: the ids to keep in a filtered
// tree and the ranked list of nodes that matched on their own.
type SearchResult struct {
	Query   string
	Visible domain.IDSet
	Matches []ScoredNode
}

// SearchCommand filters the tree by a query string
type SearchCommand struct {
	session *application.Session
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(session *application.Session, query string) *SearchCommand {
	return &SearchCommand{
		session: session,
		Query:   query,
	}
}

// Execute computes the visible set and the ranked direct matches.
// A blank query keeps every node visible and ranks nothing.
func (c *SearchCommand) Execute(ctx context.Context) (*SearchResult, error) {
	root := c.session.Root()
	query := strings.TrimSpace(c.Query)

	result := &SearchResult{
		Query:   query,
		Visible: domain.ComputeVisibleIDs(root, query),
	}
	if query == "" {
		return result, nil
	}

	var matches []*domain.Node
	depths := make(map[string]int)
	domain.Walk(root, func(n *domain.Node, depth int) bool {
		if n.ID != root.ID && domain.NodeMatchesQuery(n, query) {
			matches = append(matches, n)
			depths[n.ID] = depth
		}
		return true
	})

	result.Matches = FuzzySort(matches, query)
	for i := range result.Matches {
		result.Matches[i].Depth = depths[result.Matches[i].Node.ID]
	}
	return result, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '/' || target[i-1] == '\\' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores nodes against the query and orders them best first.
// Ties keep tree order.
func FuzzySort(nodes []*domain.Node, query string) []ScoredNode {
	scored := make([]ScoredNode, 0, len(nodes))

	for _, n := range nodes {
		// Name hits outrank target hits of the same quality
		s1 := FuzzyScore(n.Name, query) * 2
		s2 := FuzzyScore(n.Target, query)
		s3 := FuzzyScore(string(n.Type), query)

		best := max(s1, s2, s3)

		if best > 0 {
			scored = append(scored, ScoredNode{
				Node:  n,
				Score: best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
