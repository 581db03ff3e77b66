package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizerdashboard/internal/domain"
)

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	t0 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func attr(id int64, name string) domain.Attribute {
	return domain.Attribute{ID: id, Name: name, Type: domain.AttributeText}
}

func collapseAttrs(l *Log[domain.Attribute], original []domain.Attribute) domain.ChangeSet[domain.Attribute] {
	return Collapse(l.Records(), original, attributeKey)
}

func TestCollapse_UpdateThenDeleteOfExisting(t *testing.T) {
	original := []domain.Attribute{attr(1, "Wiek")}
	l := NewLog[domain.Attribute](fixedClock())
	l.Append(domain.ChangeUpdate, attr(1, "Wiek (lata)"))
	l.Append(domain.ChangeDelete, attr(1, "Wiek (lata)"))

	got := collapseAttrs(l, original)
	assert.Empty(t, got.ToAdd)
	assert.Empty(t, got.ToUpdate)
	require.Len(t, got.ToDelete, 1)
	assert.Equal(t, int64(1), got.ToDelete[0].ID)
}

func TestCollapse_AddUpdateDeleteCancels(t *testing.T) {
	l := NewLog[domain.Attribute](fixedClock())
	l.Append(domain.ChangeAdd, attr(-1, "Dieta"))
	l.Append(domain.ChangeUpdate, attr(-1, "Dieta specjalna"))
	l.Append(domain.ChangeDelete, attr(-1, "Dieta specjalna"))

	got := collapseAttrs(l, nil)
	assert.True(t, got.Empty())
	assert.Equal(t, 0, got.Discarded)
	assert.Equal(t, 3, l.Len(), "raw log keeps every record")
}

func TestCollapse_RepeatedUpdatesKeepLast(t *testing.T) {
	original := []domain.Attribute{attr(1, "a"), attr(2, "b")}
	l := NewLog[domain.Attribute](fixedClock())
	for _, name := range []string{"a1", "a2", "a3"} {
		l.Append(domain.ChangeUpdate, attr(1, name))
	}

	got := collapseAttrs(l, original)
	require.Len(t, got.ToUpdate, 1)
	assert.Equal(t, "a3", got.ToUpdate[0].Name)
}

func TestCollapse_UpdateOfPendingAddStaysAdd(t *testing.T) {
	l := NewLog[domain.Attribute](fixedClock())
	l.Append(domain.ChangeAdd, attr(-1, "Dieta"))
	l.Append(domain.ChangeUpdate, attr(-1, "Dieta specjalna"))

	got := collapseAttrs(l, nil)
	require.Len(t, got.ToAdd, 1)
	assert.Equal(t, "Dieta specjalna", got.ToAdd[0].Name)
	assert.Empty(t, got.ToUpdate)
}

func TestCollapse_OutputOrder(t *testing.T) {
	original := []domain.Attribute{attr(1, "a"), attr(2, "b"), attr(3, "c")}
	l := NewLog[domain.Attribute](fixedClock())
	l.Append(domain.ChangeDelete, attr(3, "c"))
	l.Append(domain.ChangeUpdate, attr(2, "b2"))
	l.Append(domain.ChangeAdd, attr(-1, "x"))
	l.Append(domain.ChangeUpdate, attr(1, "a2"))
	l.Append(domain.ChangeAdd, attr(-2, "y"))

	got := collapseAttrs(l, original)
	require.Len(t, got.ToAdd, 2)
	assert.Equal(t, []int64{-1, -2}, []int64{got.ToAdd[0].ID, got.ToAdd[1].ID})
	require.Len(t, got.ToUpdate, 2)
	assert.Equal(t, []int64{2, 1}, []int64{got.ToUpdate[0].ID, got.ToUpdate[1].ID})
	require.Len(t, got.ToDelete, 1)
	assert.Equal(t, int64(3), got.ToDelete[0].ID)
}

func TestCollapse_SortsByTimestamp(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	records := []domain.ChangeRecord[domain.Attribute]{
		{Kind: domain.ChangeDelete, Data: attr(-1, "x"), Timestamp: base.Add(2 * time.Second), Seq: 1},
		{Kind: domain.ChangeAdd, Data: attr(-1, "x"), Timestamp: base.Add(time.Second), Seq: 2},
	}
	got := Collapse(records, nil, attributeKey)
	assert.True(t, got.Empty())
}

func TestCollapse_DeletionWins(t *testing.T) {
	original := []domain.Attribute{attr(1, "a")}
	l := NewLog[domain.Attribute](fixedClock())
	l.Append(domain.ChangeDelete, attr(1, "a"))
	l.Append(domain.ChangeUpdate, attr(1, "late edit"))
	l.Append(domain.ChangeDelete, attr(1, "a"))
	l.Append(domain.ChangeAdd, attr(1, "a"))

	got := collapseAttrs(l, original)
	require.Len(t, got.ToDelete, 1)
	assert.Empty(t, got.ToUpdate)
	assert.Empty(t, got.ToAdd)
	assert.Equal(t, 3, got.Discarded)
}

func TestCollapse_UnknownKeysDiscarded(t *testing.T) {
	l := NewLog[domain.Attribute](fixedClock())
	l.Append(domain.ChangeUpdate, attr(9, "ghost"))
	l.Append(domain.ChangeDelete, attr(8, "ghost"))

	got := collapseAttrs(l, nil)
	assert.True(t, got.Empty())
	assert.Equal(t, 2, got.Discarded)
}

func TestCollapse_CoOrganizersKeyedByEmailUntilDurable(t *testing.T) {
	id := int64(11)
	original := []domain.CoOrganizer{{ID: &id, Email: "old@example.com"}}
	l := NewLog[domain.CoOrganizer](fixedClock())
	l.Append(domain.ChangeAdd, domain.CoOrganizer{Email: "new@example.com"})
	l.Append(domain.ChangeDelete, domain.CoOrganizer{Email: "NEW@example.com "})
	l.Append(domain.ChangeUpdate, domain.CoOrganizer{ID: &id, Email: "old@example.com", Permissions: []domain.Permission{{ID: 2}}})

	got := Collapse(l.Records(), original, coOrganizerKey)
	assert.Empty(t, got.ToAdd)
	require.Len(t, got.ToUpdate, 1)
	assert.Equal(t, []int64{2}, got.ToUpdate[0].PermissionIDs())
}

func TestApply(t *testing.T) {
	items := []domain.Attribute{attr(1, "a"), attr(2, "b"), attr(3, "c")}
	changes := domain.ChangeSet[domain.Attribute]{
		ToAdd:    []domain.Attribute{attr(10, "d")},
		ToUpdate: []domain.Attribute{attr(2, "b2")},
		ToDelete: []domain.Attribute{attr(1, "a")},
	}
	got := Apply(items, changes, attributeKey)
	assert.Equal(t, []domain.Attribute{attr(2, "b2"), attr(3, "c"), attr(10, "d")}, got)
	assert.Equal(t, "a", items[0].Name, "input untouched")
}
