// Package bgg is a minimal client for the BoardGameGeek XML API2, used to
// auto-populate game catalog entries (weight, player counts, playtime,
// categories, mechanics).
package bgg

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrGameNotFound = errors.New("game not found on BGG")

// GameMetadata is what the catalog consumes from a BGG lookup.
type GameMetadata struct {
	BGGID         int
	Name          string
	Weight        float64
	MinPlayers    int
	MaxPlayers    int
	MinPlaytime   int
	MaxPlaytime   int
	YearPublished int
	Kind          string
	Categories    []string
	Mechanics     []string
	URL           string
}

// MetadataFetcher is the narrow interface the game service depends on.
type MetadataFetcher interface {
	FindGame(ctx context.Context, name string) (*GameMetadata, error)
	FetchGame(ctx context.Context, bggID int) (*GameMetadata, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResponse struct {
	Items []struct {
		ID   int    `xml:"id,attr"`
		Type string `xml:"type,attr"`
		Name struct {
			Value string `xml:"value,attr"`
		} `xml:"name"`
	} `xml:"item"`
}

type thingResponse struct {
	Items []struct {
		ID    int    `xml:"id,attr"`
		Type  string `xml:"type,attr"`
		Names []struct {
			Type  string `xml:"type,attr"`
			Value string `xml:"value,attr"`
		} `xml:"name"`
		YearPublished intValue `xml:"yearpublished"`
		MinPlayers    intValue `xml:"minplayers"`
		MaxPlayers    intValue `xml:"maxplayers"`
		MinPlaytime   intValue `xml:"minplaytime"`
		MaxPlaytime   intValue `xml:"maxplaytime"`
		Links         []struct {
			Type  string `xml:"type,attr"`
			Value string `xml:"value,attr"`
		} `xml:"link"`
		Statistics struct {
			Ratings struct {
				AverageWeight floatValue `xml:"averageweight"`
			} `xml:"ratings"`
		} `xml:"statistics"`
	} `xml:"item"`
}

type intValue struct {
	Value int `xml:"value,attr"`
}

type floatValue struct {
	Value float64 `xml:"value,attr"`
}

// FindGame searches BGG by name and fetches full details for the first
// boardgame hit, mirroring how a user would pick the top search result.
func (c *Client) FindGame(ctx context.Context, name string) (*GameMetadata, error) {
	endpoint := fmt.Sprintf("%s/search?query=%s&type=boardgame", c.baseURL, url.QueryEscape(name))

	var search searchResponse
	if err := c.getXML(ctx, endpoint, &search); err != nil {
		return nil, fmt.Errorf("bgg search for %q failed: %w", name, err)
	}
	if len(search.Items) == 0 {
		return nil, ErrGameNotFound
	}

	return c.FetchGame(ctx, search.Items[0].ID)
}

// FetchGame retrieves a single game by BGG id, including its statistics
// (the community "averageweight" becomes the game's weight).
func (c *Client) FetchGame(ctx context.Context, bggID int) (*GameMetadata, error) {
	endpoint := fmt.Sprintf("%s/thing?id=%d&stats=1", c.baseURL, bggID)

	var thing thingResponse
	if err := c.getXML(ctx, endpoint, &thing); err != nil {
		return nil, fmt.Errorf("bgg thing %d failed: %w", bggID, err)
	}
	if len(thing.Items) == 0 {
		return nil, ErrGameNotFound
	}

	item := thing.Items[0]

	meta := &GameMetadata{
		BGGID:         item.ID,
		Weight:        item.Statistics.Ratings.AverageWeight.Value,
		MinPlayers:    item.MinPlayers.Value,
		MaxPlayers:    item.MaxPlayers.Value,
		MinPlaytime:   item.MinPlaytime.Value,
		MaxPlaytime:   item.MaxPlaytime.Value,
		YearPublished: item.YearPublished.Value,
		Kind:          item.Type,
		URL:           fmt.Sprintf("https://boardgamegeek.com/boardgame/%d", item.ID),
	}

	for _, n := range item.Names {
		if n.Type == "primary" {
			meta.Name = n.Value
			break
		}
	}
	if meta.Name == "" && len(item.Names) > 0 {
		meta.Name = item.Names[0].Value
	}

	for _, link := range item.Links {
		switch link.Type {
		case "boardgamecategory":
			meta.Categories = append(meta.Categories, link.Value)
		case "boardgamemechanic":
			meta.Mechanics = append(meta.Mechanics, link.Value)
		}
	}

	// The engine expects weights in [1, 5]; unrated entries come back as 0.
	if meta.Weight < 1 {
		meta.Weight = 1
	}

	return meta, nil
}

func (c *Client) getXML(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from BGG", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return xml.Unmarshal(body, dst)
}
