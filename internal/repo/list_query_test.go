package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_NoFilter(t *testing.T) {
	dataSQL, countSQL, args := buildListQuery(ListFilter{
		SortBy: "nama", SortOrder: "ASC", Page: 1, Limit: 10,
	})

	assert.NotContains(t, countSQL, "WHERE")
	assert.NotContains(t, dataSQL, "WHERE")
	assert.Contains(t, dataSQL, "ORDER BY m.nama ASC, m.id ASC")
	require.Len(t, args, 2)
	assert.Equal(t, 10, args[0])
	assert.Equal(t, 0, args[1])
}

func TestBuildListQuery_SearchAndProdi(t *testing.T) {
	prodiID := int64(3)
	dataSQL, countSQL, args := buildListQuery(ListFilter{
		Search: "ali", ProdiID: &prodiID,
		SortBy: "nim", SortOrder: "desc", Page: 3, Limit: 10,
	})

	assert.Contains(t, dataSQL, "(m.nama ILIKE $1 OR m.nim ILIKE $1)")
	assert.Contains(t, dataSQL, "m.prodi_id = $2")
	assert.Contains(t, dataSQL, "ORDER BY m.nim DESC, m.id ASC")
	assert.Contains(t, dataSQL, "LIMIT $3 OFFSET $4")

	// the count statement shares the predicate and skips limit/offset
	assert.Contains(t, countSQL, "(m.nama ILIKE $1 OR m.nim ILIKE $1)")
	assert.Contains(t, countSQL, "m.prodi_id = $2")
	assert.NotContains(t, countSQL, "LIMIT")

	require.Len(t, args, 4)
	assert.Equal(t, "%ali%", args[0])
	assert.Equal(t, prodiID, args[1])
	assert.Equal(t, 10, args[2])
	assert.Equal(t, 20, args[3], "page 3 with limit 10 starts at offset 20")
}

func TestBuildListQuery_SortByID_NoTieBreak(t *testing.T) {
	dataSQL, _, _ := buildListQuery(ListFilter{
		SortBy: "id", SortOrder: "DESC", Page: 1, Limit: 5,
	})
	assert.Contains(t, dataSQL, "ORDER BY m.id DESC")
	assert.NotContains(t, dataSQL, "m.id DESC, m.id ASC")
}

func TestBuildListQuery_UnknownSortFallsBack(t *testing.T) {
	dataSQL, _, _ := buildListQuery(ListFilter{
		SortBy: "foto", SortOrder: "sideways", Page: 1, Limit: 5,
	})
	assert.Contains(t, dataSQL, "ORDER BY m.nama ASC")
}
