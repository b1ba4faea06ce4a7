package finding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFiltersAndCounts(t *testing.T) {
	var list List
	list.Addf(KindCycle, []string{"a", "b"}, "cycle among %d objectives", 2)
	list.Addf(KindSelfLoop, []string{"c"}, "c lists itself")
	list.Addf(KindCycle, []string{"x", "y", "z"}, "cycle among %d objectives", 3)

	assert.Len(t, list.OfKind(KindCycle), 2)
	assert.Equal(t, 1, list.Counts()[KindSelfLoop])
	assert.Equal(t, []Kind{KindCycle, KindSelfLoop}, list.Kinds())
	assert.Equal(t, "cycle [a, b]: cycle among 2 objectives", list[0].String())
}

func TestNewCopiesObjectiveIDs(t *testing.T) {
	ids := []string{"a"}
	f := New(KindDuplicateID, ids, "dup")
	ids[0] = "b"
	assert.Equal(t, []string{"a"}, f.Objectives)
}
