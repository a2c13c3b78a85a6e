package core

import "strings"

// SearchResult holds quick-search matches in source-collection order.
type SearchResult struct {
	Clients   []Client   `json:"clients"`
	Contracts []Contract `json:"contracts"`
}

// Search matches the query as a case-insensitive substring against client
// first name, last name and email, and against contract provider and code.
// An empty or whitespace-only query returns empty result sets; there is no
// ranking and no index, the full collections are rescanned per call.
func Search(clients []Client, contracts []Contract, query string) SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	var result SearchResult
	if query == "" {
		return result
	}
	for _, c := range clients {
		if containsFold(c.FirstName, query) || containsFold(c.LastName, query) || containsFold(c.Email, query) {
			result.Clients = append(result.Clients, c)
		}
	}
	for _, c := range contracts {
		if containsFold(c.Provider, query) || containsFold(c.Code, query) {
			result.Contracts = append(result.Contracts, c)
		}
	}
	return result
}

// containsFold expects needle already lower-cased.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
