package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soyunomas/dupr/internal/entities"
)

func TestSortGroups(t *testing.T) {
	groups := []entities.DuplicateGroup{
		{Key: entities.DuplicateKey{Size: 9, Hash: 1}, Paths: []string{"/z", "/a"}},
		{Key: entities.DuplicateKey{Size: 2, Hash: 7}, Paths: []string{"/m", "/n"}},
		{Key: entities.DuplicateKey{Size: 2, Hash: 3}, Paths: []string{"/q", "/p"}, HardLinks: []string{"/y", "/x"}},
	}

	sortGroups(groups)

	assert.Equal(t, []entities.DuplicateGroup{
		{Key: entities.DuplicateKey{Size: 2, Hash: 3}, Paths: []string{"/p", "/q"}, HardLinks: []string{"/x", "/y"}},
		{Key: entities.DuplicateKey{Size: 2, Hash: 7}, Paths: []string{"/m", "/n"}},
		{Key: entities.DuplicateKey{Size: 9, Hash: 1}, Paths: []string{"/a", "/z"}},
	}, groups)
}
