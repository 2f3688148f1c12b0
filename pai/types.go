package pai

import "time"

// VectorizeResult is the backend's response to a vectorize request. The
// preview carries at most the first five dimensions of the embedding.
type VectorizeResult struct {
	OriginalText    string    `json:"original_text"`
	VectorDimension int       `json:"vector_dimension"`
	VectorPreview   []float64 `json:"vector_preview"`
}

// ContextResult confirms that a piece of context was embedded and stored.
type ContextResult struct {
	Status  string `json:"status"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Match is a single semantic search hit.
type Match struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// SearchResult holds the matches for a semantic search query.
type SearchResult struct {
	Matches      []Match `json:"matches"`
	Query        string  `json:"query"`
	TotalResults int     `json:"total_results"`
}

// InsightResult is an AI-generated insight grounded in stored context.
type InsightResult struct {
	Insight     string   `json:"insight"`
	ContextUsed []string `json:"context_used"`
	ModelUsed   string   `json:"model_used"`
}

// HealthStatus reports backend availability and which integrations are
// configured.
type HealthStatus struct {
	Status  string          `json:"status"`
	Service string          `json:"service"`
	Config  map[string]bool `json:"config"`
	Version string          `json:"version"`
}

// NewsArticle is an article fetched from an RSS/web source.
type NewsArticle struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	Source      string         `json:"source"`
	Summary     string         `json:"summary"`
	Content     string         `json:"content"`
	Author      string         `json:"author,omitempty"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	FetchedAt   time.Time      `json:"fetched_at"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
}

// Signal is a news article scored against the user's context. Score is the
// 0-10 relevance score; Similarity is the raw cosine similarity.
type Signal struct {
	Article    NewsArticle `json:"article"`
	Score      float64     `json:"score"`
	Similarity float64     `json:"similarity"`
	Reason     string      `json:"reason,omitempty"`
}

// SignalsResult holds ranked signals for a user context.
type SignalsResult struct {
	Signals     []Signal `json:"signals"`
	Total       int      `json:"total"`
	UserContext string   `json:"user_context,omitempty"`
}

// SignalStats summarizes the state of the signal system.
type SignalStats struct {
	NewsArticlesCount int    `json:"news_articles_count"`
	FeedsConfigured   int    `json:"feeds_configured"`
	Status            string `json:"status"`
}

// FeedSource is an RSS/Atom feed the backend is configured to crawl.
type FeedSource struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Enabled  bool   `json:"enabled"`
}

// FeedFetchResult summarizes a feed fetch-and-process run.
type FeedFetchResult struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Fetched   int      `json:"fetched"`
	Processed int      `json:"processed"`
	Sources   []string `json:"sources,omitempty"`
}
