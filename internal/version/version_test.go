package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Commit)
	assert.Equal(t, runtime.Version(), info.Go)
	assert.Contains(t, info.String(), "sqlb "+info.Version)
	assert.Contains(t, info.String(), runtime.GOOS+"/"+runtime.GOARCH)
}

func TestGet_LinkerValuesWin(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "1.2.3", "abc123", "2026-01-02"

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-01-02", info.Date)
}

func TestInfo_Rows(t *testing.T) {
	rows := Info{Version: "1.0.0", Drivers: []string{"mysql", "sqlite3"}}.Rows()

	require.Len(t, rows, 6)
	assert.Equal(t, []string{"version", "1.0.0"}, rows[0])
	assert.Equal(t, []string{"drivers", "mysql, sqlite3"}, rows[5])
	assert.Equal(t, []string{"drivers", "none"}, Info{}.Rows()[5])
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortRevision("0123456789abcdef0123"))
	assert.Equal(t, "abc", shortRevision("abc"))
}
