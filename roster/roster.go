/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"golang.org/x/sync/errgroup"
)

var ErrNoMembersTable = errors.New("roster: page has no members table")

// Source is one pool's roster page.
type Source struct {
	Pool pairing.Pool
	URL  string
}

// SourcesFromConfig converts configured roster blocks into Sources.
func SourcesFromConfig(cfg []internal.RosterConfig) ([]Source, error) {
	sources := make([]Source, 0, len(cfg))
	for _, rc := range cfg {
		pool, err := pairing.ParsePool(rc.Pool)
		if err != nil {
			return nil, fmt.Errorf("roster %q: %w", rc.Pool, err)
		}
		sources = append(sources, Source{Pool: pool, URL: rc.URL})
	}
	return sources, nil
}

// ParsePage extracts the players listed in the members table of doc. The
// first cell of each row is the player id and the second the display name.
// Rows without an id are skipped.
func ParsePage(doc *goquery.Document, pool pairing.Pool) ([]pairing.Player,
	error) {

	table := doc.Find("table#members")
	if table.Length() == 0 {
		return nil, ErrNoMembersTable
	}

	var players []pairing.Player
	table.Find("tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 2 {
			return
		}
		id := strings.TrimSpace(cells.Eq(0).Text())
		if id == "" {
			return
		}
		players = append(players, pairing.Player{
			ID:   pairing.PlayerID(id),
			Name: internal.NormalizeName(cells.Eq(1).Text()),
			Pool: pool,
		})
	})

	return players, nil
}

// FetchPage gets the HTML document at url using client.
func FetchPage(ctx context.Context, client *http.Client,
	url string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch roster (do): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// Fetch gets every source page concurrently and returns the combined roster
// in source order.
func Fetch(ctx context.Context, client *http.Client,
	sources []Source) ([]pairing.Player, error) {

	results := make([][]pairing.Player, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			doc, err := FetchPage(gctx, client, src.URL)
			if err != nil {
				return fmt.Errorf("%v roster: %w", src.Pool, err)
			}
			players, err := ParsePage(doc, src.Pool)
			if err != nil {
				return fmt.Errorf("%v roster %s: %w", src.Pool, src.URL, err)
			}
			results[i] = players
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []pairing.Player
	for _, players := range results {
		all = append(all, players...)
	}
	return all, nil
}

// Merge folds fetched players into ev's roster. Known ids get their name and
// pool refreshed; new ids are appended. Players already placed in a grid keep
// their placement. It returns the number of players added.
func Merge(ev *pairing.Event, players []pairing.Player) int {
	idx := make(map[pairing.PlayerID]int, len(ev.Players))
	for i, p := range ev.Players {
		idx[p.ID] = i
	}

	added := 0
	for _, p := range players {
		if i, ok := idx[p.ID]; ok {
			ev.Players[i] = p
			continue
		}
		idx[p.ID] = len(ev.Players)
		ev.Players = append(ev.Players, p)
		added++
	}
	return added
}
