package genogram

import (
	"testing"
)

func buildIndex(persons []testPerson) *Index {
	e := newTestEngine(persons, testOptions())
	e.rebuild()
	return e.Index()
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestSpousesOfSymmetry(t *testing.T) {
	// The marriage is declared on one side only; both directions must
	// resolve regardless of which partner declared it.
	cases := []struct {
		name    string
		persons []testPerson
	}{
		{"declared on husband", []testPerson{
			male("a", nil, nil, []string{"b"}),
			female("b", nil, nil, nil),
		}},
		{"declared on wife", []testPerson{
			male("a", nil, nil, nil),
			female("b", nil, nil, []string{"a"}),
		}},
		{"declared on both", []testPerson{
			male("a", nil, nil, []string{"b"}),
			female("b", nil, nil, []string{"a"}),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ix := buildIndex(tc.persons)
			a, _ := ix.Node("a")
			b, _ := ix.Node("b")

			if got := ids(ix.SpousesOf(a)); len(got) != 1 || got[0] != "b" {
				t.Errorf("SpousesOf(a) = %v, want [b]", got)
			}
			if got := ids(ix.SpousesOf(b)); len(got) != 1 || got[0] != "a" {
				t.Errorf("SpousesOf(b) = %v, want [a]", got)
			}
		})
	}
}

func TestSpousesOfDeduplicates(t *testing.T) {
	// Mutual declaration plus a duplicate entry must yield one spouse.
	ix := buildIndex([]testPerson{
		male("a", nil, nil, []string{"b", "b"}),
		female("b", nil, nil, []string{"a"}),
	})
	a, _ := ix.Node("a")
	if got := ids(ix.SpousesOf(a)); len(got) != 1 {
		t.Errorf("SpousesOf(a) = %v, want exactly one entry", got)
	}
}

func TestParentsOf(t *testing.T) {
	ix := buildIndex([]testPerson{
		male("f", nil, nil, nil),
		female("m", nil, nil, nil),
		male("c", []string{"f"}, []string{"m"}, nil),
		male("half", []string{"f"}, []string{"ghost"}, nil),
	})

	c, _ := ix.Node("c")
	if got := ids(ix.ParentsOf(c)); len(got) != 2 || got[0] != "f" || got[1] != "m" {
		t.Errorf("ParentsOf(c) = %v, want [f m]", got)
	}

	// Dangling mother reference is silently excluded.
	half, _ := ix.Node("half")
	if got := ids(ix.ParentsOf(half)); len(got) != 1 || got[0] != "f" {
		t.Errorf("ParentsOf(half) = %v, want [f]", got)
	}
}

func TestChildrenOfGroup(t *testing.T) {
	ix := buildIndex(oneFamily())
	h, _ := ix.Node("h")
	w1, _ := ix.Node("w1")
	w2, _ := ix.Node("w2")

	got := ids(ix.ChildrenOf([]*Node{h, w1, w2}))
	want := []string{"c1", "c2", "c3"}
	if len(got) != len(want) {
		t.Fatalf("ChildrenOf = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ChildrenOf[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// Children of the second wife only.
	if got := ids(ix.ChildrenOf([]*Node{w2})); len(got) != 1 || got[0] != "c3" {
		t.Errorf("ChildrenOf([w2]) = %v, want [c3]", got)
	}

	if got := ix.ChildrenOf(nil); got != nil {
		t.Errorf("ChildrenOf(nil) = %v, want nil", got)
	}
}

func TestRootPredicate(t *testing.T) {
	// A node is a root iff both parent id lists are empty or absent;
	// a dangling reference still disqualifies it.
	ix := buildIndex([]testPerson{
		male("root", nil, nil, nil),
		male("child", []string{"root"}, nil, nil),
		male("orphanRef", []string{"nobody"}, nil, nil),
		female("rootToo", nil, nil, []string{"root"}),
	})

	got := ids(ix.Roots())
	want := map[string]bool{"root": true, "rootToo": true}
	if len(got) != 2 {
		t.Fatalf("Roots = %v, want exactly root and rootToo", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected root %q", id)
		}
	}
}

func TestDanglingSpouseExcluded(t *testing.T) {
	ix := buildIndex([]testPerson{
		male("a", nil, nil, []string{"missing"}),
	})
	a, _ := ix.Node("a")
	if got := ix.SpousesOf(a); len(got) != 0 {
		t.Errorf("SpousesOf(a) = %v, want empty", ids(got))
	}
}

func TestIndexCachesInvalidate(t *testing.T) {
	ix := buildIndex([]testPerson{
		male("a", nil, nil, []string{"b"}),
		female("b", nil, nil, nil),
	})
	a, _ := ix.Node("a")

	first := ix.SpousesOf(a)
	if cached := ix.SpousesOf(a); &cached[0] != &first[0] {
		t.Error("second lookup should hit the cache")
	}

	ix.invalidate()
	if got := ids(ix.SpousesOf(a)); len(got) != 1 || got[0] != "b" {
		t.Errorf("SpousesOf(a) after invalidate = %v, want [b]", got)
	}
}
