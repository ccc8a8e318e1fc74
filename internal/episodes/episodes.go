// Package episodes retrieves episode metadata from the TVmaze public API,
// used to fill missing titles before card generation.
package episodes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ljmurray/marquee/internal/webclient"
)

const DefaultBaseURL = "https://api.tvmaze.com"

// Show is a matched series.
type Show struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Episode is one episode's metadata.
type Episode struct {
	Season int    `json:"season"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Client looks up shows and their episode lists.
type Client struct {
	web     *webclient.Client
	baseURL string
}

func NewClient(web *webclient.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{web: web, baseURL: strings.TrimRight(baseURL, "/")}
}

// Search returns the best-matching show for a name.
func (c *Client) Search(ctx context.Context, name string) (Show, error) {
	params := url.Values{"q": []string{name}}
	body, err := c.web.Get(ctx, c.baseURL+"/singlesearch/shows", params)
	if err != nil {
		return Show{}, fmt.Errorf("search show %q: %w", name, err)
	}

	var show Show
	if err := json.Unmarshal(body, &show); err != nil {
		return Show{}, fmt.Errorf("decode show: %w", err)
	}
	return show, nil
}

// Episodes returns every episode of a show.
func (c *Client) Episodes(ctx context.Context, showID int) ([]Episode, error) {
	body, err := c.web.Get(ctx, fmt.Sprintf("%s/shows/%d/episodes", c.baseURL, showID), nil)
	if err != nil {
		return nil, fmt.Errorf("list episodes for show %d: %w", showID, err)
	}

	var eps []Episode
	if err := json.Unmarshal(body, &eps); err != nil {
		return nil, fmt.Errorf("decode episodes: %w", err)
	}
	return eps, nil
}

// TitleFor returns the title of a specific episode, or "" when unknown.
func TitleFor(eps []Episode, season, number int) string {
	for _, e := range eps {
		if e.Season == season && e.Number == number {
			return e.Name
		}
	}
	return ""
}
