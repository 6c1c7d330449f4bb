package services

import (
	"sort"

	"github.com/cppla/linkbook/models"
)

// InterestChange is the delta that turns a current interest set into a requested one.
type InterestChange struct {
	ToAdd    []models.Field
	ToRemove []models.Field
}

// Empty reports whether applying the change would be a no-op.
func (c InterestChange) Empty() bool {
	return len(c.ToAdd) == 0 && len(c.ToRemove) == 0
}

// ReconcileInterests computes requested minus current (ToAdd) and current minus
// requested (ToRemove). Repeated fields collapse; fields in both sets are left alone.
// An empty requested set removes everything.
func ReconcileInterests(current, requested []models.Field) InterestChange {
	have := toFieldSet(current)
	want := toFieldSet(requested)

	change := InterestChange{ToAdd: []models.Field{}, ToRemove: []models.Field{}}
	for f := range want {
		if _, ok := have[f]; !ok {
			change.ToAdd = append(change.ToAdd, f)
		}
	}
	for f := range have {
		if _, ok := want[f]; !ok {
			change.ToRemove = append(change.ToRemove, f)
		}
	}
	sortFields(change.ToAdd)
	sortFields(change.ToRemove)
	return change
}

func toFieldSet(fields []models.Field) map[models.Field]struct{} {
	set := make(map[models.Field]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func sortFields(fields []models.Field) {
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
}
