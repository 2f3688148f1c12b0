package pai

import (
	"context"
	"strconv"

	"github.com/paifilter/paikit/httpclient"
	"github.com/paifilter/paikit/validation"
)

// Signals returns news articles ranked against the given user context.
// A non-positive topK selects the default of 10; a negative minScore
// selects the default threshold of 3.0.
func (c *Client) Signals(ctx context.Context, text string, topK int, minScore float64) (*SignalsResult, error) {
	in, err := newTextInput(text)
	if err != nil {
		return nil, err
	}

	if topK <= 0 {
		topK = DefaultSignalsTopK
	}
	if minScore < 0 {
		minScore = DefaultMinScore
	}
	q := signalsQuery{TopK: topK, MinScore: minScore}
	if err := validation.Struct(&q); err != nil {
		return nil, err
	}

	resp, err := httpclient.Post[SignalsResult](c.http, ctx, pathSignals, in,
		httpclient.WithQueryParam("top_k", strconv.Itoa(q.TopK)),
		httpclient.WithQueryParam("min_score", strconv.FormatFloat(q.MinScore, 'f', -1, 64)),
	)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// SignalStats reports how many articles are stored and whether the signal
// system is ready.
func (c *Client) SignalStats(ctx context.Context) (*SignalStats, error) {
	return get[SignalStats](c, ctx, pathSignalStats)
}

// ListFeeds returns the configured RSS/Atom feed sources.
func (c *Client) ListFeeds(ctx context.Context) ([]FeedSource, error) {
	resp, err := httpclient.Get[[]FeedSource](c.http, ctx, pathFeeds)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FetchFeeds asks the backend to crawl all feeds, embed the articles, and
// store them. A non-positive limitPerFeed selects the default of 10
// articles per feed.
func (c *Client) FetchFeeds(ctx context.Context, limitPerFeed int) (*FeedFetchResult, error) {
	if limitPerFeed <= 0 {
		limitPerFeed = DefaultLimitPerFeed
	}
	resp, err := httpclient.Post[FeedFetchResult](c.http, ctx, pathFeedsFetch, nil,
		httpclient.WithQueryParam("limit_per_feed", strconv.Itoa(limitPerFeed)),
	)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
