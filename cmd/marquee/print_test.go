package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type printClient struct {
	page    domain.SearchPage
	err     error
	filters domain.SearchFilters
}

func (c *printClient) Search(ctx context.Context, f domain.SearchFilters, page int) (domain.SearchPage, error) {
	c.filters = f
	return c.page, c.err
}

func TestRunPrintSortsResults(t *testing.T) {
	client := &printClient{page: domain.SearchPage{
		Items: []domain.MovieSummary{
			{ID: "tt1", Title: "The Matrix", Year: "1999", Type: domain.MediaTypeMovie},
			{ID: "tt2", Title: "Matrix Reloaded", Year: "2003", Type: domain.MediaTypeMovie},
		},
		TotalResults: 25,
		TotalPages:   3,
	}}

	var out bytes.Buffer
	err := runPrint(context.Background(), &out, client, domain.SearchFilters{Query: " matrix ", Year: "1999x"}, domain.SortYearDesc)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "tt2")
	assert.Contains(t, lines[1], "tt1")
	assert.Equal(t, "2 of 25 results", lines[3])

	assert.Equal(t, "matrix", client.filters.Query)
	assert.Empty(t, client.filters.Year)
}

func TestRunPrintErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *printClient
		want   string
	}{
		{"provider message", &printClient{page: domain.SearchPage{ErrorMessage: "Movie not found!"}}, "Movie not found!"},
		{"rate limited", &printClient{err: domain.ErrRateLimited}, domain.MsgRateLimited},
		{"transport", &printClient{err: errors.New("dial tcp")}, domain.MsgFailedToSearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runPrint(context.Background(), &out, tt.client, domain.SearchFilters{Query: "matrix"}, domain.SortRelevance)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, out.String())
		})
	}
}

func TestRunPrintEmptyQueryShowsLatest(t *testing.T) {
	client := &printClient{page: domain.SearchPage{
		Items: []domain.MovieSummary{{ID: "tt5", Title: "Some Movie", Year: "2024", Type: domain.MediaTypeMovie}},
	}}

	var out bytes.Buffer
	require.NoError(t, runPrint(context.Background(), &out, client, domain.SearchFilters{}, domain.SortRelevance))
	assert.Contains(t, out.String(), "Some Movie")
	assert.Equal(t, "movie", client.filters.Query)
	assert.Equal(t, domain.MediaTypeMovie, client.filters.Type)
}
