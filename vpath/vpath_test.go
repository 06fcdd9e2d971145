package vpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/bucketfs/vpath"
)

func TestNewPrefix(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected vpath.Prefix
	}{
		{name: "root", raw: "", expected: vpath.Root},
		{name: "only slash", raw: "/", expected: vpath.Root},
		{name: "missing trailing slash", raw: "docs", expected: "docs/"},
		{name: "already a prefix", raw: "docs/2024/", expected: "docs/2024/"},
		{name: "leading slash dropped", raw: "/docs/2024", expected: "docs/2024/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, vpath.NewPrefix(tc.raw))
		})
	}
}

func TestKey_IsFolderMarker(t *testing.T) {
	assert.True(t, vpath.Key("a/").IsFolderMarker())
	assert.True(t, vpath.Key("a/b/").IsFolderMarker())
	assert.False(t, vpath.Key("a/b.txt").IsFolderMarker())
}

func TestKey_Rebase(t *testing.T) {
	tests := []struct {
		key      vpath.Key
		from, to vpath.Prefix
		expected vpath.Key
	}{
		{key: "a/x.txt", from: "a/", to: "z/", expected: "z/x.txt"},
		{key: "a/b/y.txt", from: "a/", to: "z/", expected: "z/b/y.txt"},
		{key: "a/", from: "a/", to: "z/", expected: "z/"},
		{key: "a/b/", from: "a/", to: "docs/a/", expected: "docs/a/b/"},
		{key: "x.txt", from: vpath.Root, to: "z/", expected: "z/x.txt"},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.key.Rebase(tc.from, tc.to))
		})
	}
}

func TestPrefix_ChildName(t *testing.T) {
	assert.Equal(t, "photos", vpath.Root.ChildName("photos/"))
	assert.Equal(t, "2024", vpath.Prefix("photos/").ChildName("photos/2024/"))
}

func TestPrefix_Contains(t *testing.T) {
	p := vpath.Prefix("a/")

	assert.True(t, p.Contains("a/"))
	assert.True(t, p.Contains("a/b/c.txt"))
	assert.False(t, p.Contains("ab/c.txt"))
	assert.True(t, vpath.Root.Contains("anything"))
}

func TestPrefix_Within(t *testing.T) {
	assert.True(t, vpath.Prefix("a/b/").Within("a/"))
	assert.True(t, vpath.Prefix("a/").Within("a/"))
	assert.False(t, vpath.Prefix("ab/").Within("a/"))
	assert.False(t, vpath.Prefix("a/").Within("a/b/"))
}

func TestParent(t *testing.T) {
	assert.Equal(t, vpath.Root, vpath.Parent("file.txt"))
	assert.Equal(t, vpath.Root, vpath.Parent("folder/"))
	assert.Equal(t, vpath.Prefix("a/b/"), vpath.Parent("a/b/c.txt"))
	assert.Equal(t, vpath.Prefix("a/"), vpath.Parent("a/b/"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "c.txt", vpath.BaseName("a/b/c.txt"))
	assert.Equal(t, "b", vpath.BaseName("a/b/"))
	assert.Equal(t, "a", vpath.BaseName("a"))
	assert.Empty(t, vpath.BaseName(""))
	assert.Empty(t, vpath.BaseName("/"))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		path  string
		valid bool
	}{
		{path: "", valid: true},
		{path: "a/b/c.txt", valid: true},
		{path: "a/b/", valid: true},
		{path: "/a", valid: false},
		{path: "a//b", valid: false},
		{path: "a/../b", valid: false},
		{path: "./a", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.valid, vpath.IsValid(tc.path))
		})
	}
}
