package commands

import (
	"reflect"
	"testing"

	"audiorev/internal/application"
	"audiorev/internal/domain"
)

func scored(name string, metric string, v float64) domain.AudioRecord {
	return domain.AudioRecord{
		Filename: name,
		Path:     "/audio/" + name,
		Scores:   domain.Scores{metric: v},
	}
}

func viewNames(v application.View) []string {
	names := make([]string, 0, len(v.Records))
	for _, r := range v.Records {
		names = append(names, r.Filename)
	}
	return names
}

func TestApplyQuery_StableSortKeepsTieOrder(t *testing.T) {
	ix := application.NewIndex([]domain.AudioRecord{
		scored("A.wav", "PQ", 5),
		scored("B.wav", "PQ", 3),
		scored("C.wav", "PQ", 5),
	})

	v := ApplyQuery(ix, domain.FilterCriteria{}, &domain.SortSpec{Column: "PQ"})

	want := []string{"B.wav", "A.wav", "C.wav"}
	if got := viewNames(v); !reflect.DeepEqual(got, want) {
		t.Errorf("ascending PQ order = %v, want %v (A before C on tie)", got, want)
	}
}

func TestApplyQuery_DescendingFlipsComparator(t *testing.T) {
	ix := application.NewIndex([]domain.AudioRecord{
		scored("A.wav", "PQ", 5),
		scored("B.wav", "PQ", 3),
		scored("C.wav", "PQ", 5),
	})

	v := ApplyQuery(ix, domain.FilterCriteria{}, &domain.SortSpec{Column: "PQ", Descending: true})

	// Descending is a reversed comparator, not a reversed sequence: the
	// A-before-C tie order survives.
	want := []string{"A.wav", "C.wav", "B.wav"}
	if got := viewNames(v); !reflect.DeepEqual(got, want) {
		t.Errorf("descending PQ order = %v, want %v", got, want)
	}
}

func TestApplyQuery_MissingMetricSortsLast(t *testing.T) {
	ix := application.NewIndex([]domain.AudioRecord{
		{Filename: "unscored.wav", Path: "/audio/unscored.wav"},
		scored("low.wav", "CE", 1),
		scored("high.wav", "CE", 9),
	})

	for _, descending := range []bool{false, true} {
		v := ApplyQuery(ix, domain.FilterCriteria{}, &domain.SortSpec{Column: "CE", Descending: descending})
		names := viewNames(v)
		if names[len(names)-1] != "unscored.wav" {
			t.Errorf("descending=%v: order = %v, want unscored.wav last", descending, names)
		}
	}
}

func TestApplyQuery_Filter(t *testing.T) {
	min := 3.0
	ix := application.NewIndex([]domain.AudioRecord{
		scored("keep.wav", "PQ", 4),
		scored("drop.wav", "PQ", 2),
		{Filename: "absent.wav", Path: "/audio/absent.wav"},
	})
	criteria := domain.FilterCriteria{
		Bounds: map[string]domain.Bound{"PQ": {Min: &min}},
	}

	v := ApplyQuery(ix, criteria, nil)

	if got := viewNames(v); !reflect.DeepEqual(got, []string{"keep.wav"}) {
		t.Errorf("filtered view = %v, want [keep.wav]", got)
	}
}

func TestApplyQuery_Idempotent(t *testing.T) {
	min := 2.0
	ix := application.NewIndex([]domain.AudioRecord{
		scored("a.wav", "CU", 4),
		scored("b.wav", "CU", 1),
		scored("c.wav", "CU", 3),
	})
	criteria := domain.FilterCriteria{Bounds: map[string]domain.Bound{"CU": {Min: &min}}}
	spec := &domain.SortSpec{Column: "CU"}

	first := ApplyQuery(ix, criteria, spec)
	second := ApplyQuery(ix, criteria, spec)

	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Error("same criteria over unchanged index produced different views")
	}
}

func TestApplyQuery_DoesNotMutateIndex(t *testing.T) {
	ix := application.NewIndex([]domain.AudioRecord{
		scored("z.wav", "PQ", 1),
		scored("a.wav", "PQ", 2),
	})
	before := append([]domain.AudioRecord(nil), ix.Records()...)

	ApplyQuery(ix, domain.FilterCriteria{}, &domain.SortSpec{Column: "filename"})

	if !reflect.DeepEqual(before, ix.Records()) {
		t.Error("query reordered the index records")
	}
}

func TestApplyQuery_NilSortKeepsIndexOrder(t *testing.T) {
	ix := application.NewIndex([]domain.AudioRecord{
		scored("z.wav", "PQ", 1),
		scored("a.wav", "PQ", 2),
	})

	v := ApplyQuery(ix, domain.FilterCriteria{}, nil)

	if got := viewNames(v); !reflect.DeepEqual(got, []string{"z.wav", "a.wav"}) {
		t.Errorf("view order = %v, want index order [z.wav a.wav]", got)
	}
}
