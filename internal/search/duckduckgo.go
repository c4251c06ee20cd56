// Package search queries the DuckDuckGo instant-answer API with anonymized
// request headers. Results come back pre-formatted for HTML-mode Telegram
// messages; every failure mode collapses into a fixed user-facing string.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	endpoint       = "https://api.duckduckgo.com/"
	spoofedIP      = "203.0.113.42"
	requestTimeout = 8 * time.Second

	FallbackMessage  = "Search temporarily unavailable."
	noResultsMessage = "No results found."
	ipBlockedMessage = "IP queries are blocked for your privacy."

	maxRelatedTopics = 5
)

// Queries about IP addresses are refused before any network call.
var ipQueryRE = regexp.MustCompile(`(?i)\b(?:what.?is|show|my|your|this|server|bot)?\s*ip\b`)

type Client struct {
	http   *http.Client
	logger *log.Entry
}

func NewClient() *Client {
	return &Client{
		http:   &http.Client{Timeout: requestTimeout},
		logger: log.WithField("context", "search"),
	}
}

type instantAnswer struct {
	Answer        string         `json:"Answer"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

// Search returns a ready-to-send summary. It never returns an error: backend
// trouble is logged and reported as FallbackMessage.
func (c *Client) Search(ctx context.Context, query string) string {
	if ipQueryRE.MatchString(query) {
		return ipBlockedMessage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).Error("cant build search request")
		return FallbackMessage
	}
	params := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
		"no_redirect":   {"1"},
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "Mozilla/5.0 (Linux; Android 14)")
	req.Header.Set("DNT", "1")
	req.Header.Set("X-Forwarded-For", spoofedIP)
	req.Header.Set("X-Real-IP", spoofedIP)
	req.Header.Set("Client-IP", spoofedIP)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("search request failed")
		return FallbackMessage
	}
	defer resp.Body.Close()

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		c.logger.WithError(err).Error("cant decode search response")
		return FallbackMessage
	}

	return formatAnswer(answer)
}

func formatAnswer(answer instantAnswer) string {
	if answer.Answer != "" {
		return "<b>Answer:</b>\n" + answer.Answer
	}
	if answer.AbstractText != "" {
		text := answer.AbstractText
		if answer.AbstractURL != "" {
			text += fmt.Sprintf("\n\n<a href='%s'>Source</a>", answer.AbstractURL)
		}
		return text
	}

	// Only the first five topics are considered; incomplete entries among
	// them are dropped, not backfilled from further down the list.
	topics := answer.RelatedTopics
	if len(topics) > maxRelatedTopics {
		topics = topics[:maxRelatedTopics]
	}
	var results []string
	for _, topic := range topics {
		if topic.Text == "" || topic.FirstURL == "" {
			continue
		}
		results = append(results, fmt.Sprintf("• <a href='%s'>%s</a>", topic.FirstURL, html.EscapeString(topic.Text)))
	}
	if len(results) == 0 {
		return noResultsMessage
	}
	return strings.Join(results, "\n\n")
}
