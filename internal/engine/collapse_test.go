package engine

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/soyunomas/dupr/internal/entities"
	"github.com/soyunomas/dupr/internal/scanner"
)

func fakeResolver(ids map[string]entities.FileIdentity) func(string) (entities.FileIdentity, error) {
	return func(path string) (entities.FileIdentity, error) {
		id, ok := ids[path]
		if !ok {
			return entities.FileIdentity{}, entities.NewPathError(entities.ErrMetadata, path, errors.New("vanished"))
		}
		return id, nil
	}
}

func TestCollapse_FirstPathWins(t *testing.T) {
	l, hook := test.NewNullLogger()
	bucket := scanner.Bucket{Size: 3, Entries: []entities.FileEntry{
		{Path: "/a", Size: 3},
		{Path: "/b", Size: 3},
		{Path: "/c", Size: 3},
		{Path: "/d", Size: 3},
		{Path: "/e", Size: 3},
	}}
	resolve := fakeResolver(map[string]entities.FileIdentity{
		"/a": {Device: 1, Inode: 10},
		"/b": {Device: 1, Inode: 11},
		"/c": {Device: 1, Inode: 10},
		"/d": {Device: 2, Inode: 10},
	})

	res := Collapse(bucket, resolve, logrus.NewEntry(l))

	assert.Equal(t, []Representative{
		{FileEntry: entities.FileEntry{Path: "/a", Size: 3}, Identity: entities.FileIdentity{Device: 1, Inode: 10}, Aliases: []string{"/c"}},
		{FileEntry: entities.FileEntry{Path: "/b", Size: 3}, Identity: entities.FileIdentity{Device: 1, Inode: 11}},
		{FileEntry: entities.FileEntry{Path: "/d", Size: 3}, Identity: entities.FileIdentity{Device: 2, Inode: 10}},
	}, res.Representatives)
	assert.Equal(t, 1, res.HardLinks)
	assert.Equal(t, 1, res.Errors)
	assert.Len(t, hook.AllEntries(), 1)
}

func TestCollapse_SingleEntryUntouched(t *testing.T) {
	l, _ := test.NewNullLogger()
	called := false
	resolve := func(string) (entities.FileIdentity, error) {
		called = true
		return entities.FileIdentity{}, nil
	}

	res := Collapse(scanner.Bucket{Size: 1, Entries: []entities.FileEntry{{Path: "/only", Size: 1}}}, resolve, logrus.NewEntry(l))
	assert.False(t, called)
	assert.Len(t, res.Representatives, 1)
}
