package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/sorting"
)

// runPrint writes one sorted page of results as plain text. An unsearchable
// query prints the latest feed instead.
func runPrint(ctx context.Context, w io.Writer, client domain.SearchClient, filters domain.SearchFilters, mode domain.SortMode) error {
	filters = filters.Normalized()

	if !filters.Searchable() {
		items, msg := search.Latest(ctx, client, search.DefaultLatestCount)
		if msg != "" {
			return errors.New(msg)
		}
		return writeMovies(w, sorting.Movies(items, mode))
	}

	page, err := client.Search(ctx, filters, domain.FirstPage)
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return errors.New(domain.MsgRateLimited)
	case err != nil:
		return fmt.Errorf("%s: %w", domain.MsgFailedToSearch, err)
	case page.ErrorMessage != "":
		return errors.New(page.ErrorMessage)
	}

	if err := writeMovies(w, sorting.Movies(page.Items, mode)); err != nil {
		return err
	}
	if page.TotalPages > domain.FirstPage {
		_, err = fmt.Fprintf(w, "\n%d of %d results\n", len(page.Items), page.TotalResults)
	}
	return err
}

func writeMovies(w io.Writer, items []domain.MovieSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Year, m.Type, m.Title)
	}
	return tw.Flush()
}
