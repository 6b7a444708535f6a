package response

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPageLinks(t *testing.T) {
	base, err := url.Parse("/api/v1/jobs?username=alice&page=2")
	require.NoError(t, err)

	prev, next := BuildPageLinks(base, 2, 3, 7)
	assert.Equal(t, "1", prev.Query().Get("page"))
	assert.Equal(t, "alice", prev.Query().Get("username"))
	assert.Equal(t, "3", next.Query().Get("page"))
	assert.Equal(t, "2", base.Query().Get("page"))

	prev, next = BuildPageLinks(base, 1, 40, 7)
	assert.Empty(t, prev.String())
	assert.Empty(t, next.String())
}

func TestPagedMarshal(t *testing.T) {
	base, err := url.Parse("/api/v1/jobs")
	require.NoError(t, err)

	b, err := json.Marshal(Paged(base, 1, 3, 7, []int{1, 2, 3}))
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, float64(7), out["count"])
	assert.Equal(t, "", out["previous"])
	assert.Equal(t, "/api/v1/jobs?page=2&page_size=3", out["next"])
}
