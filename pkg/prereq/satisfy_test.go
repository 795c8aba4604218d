package prereq

import "testing"

// course builds a course node whose course id doubles as its string id.
func course(id string, courseID int) Node {
	return Node{ID: id, Kind: KindCourse, CourseID: intPtr(courseID)}
}

func TestSatisfactionMap_AndOr(t *testing.T) {
	// a, b feed an AND; b, c feed an OR; both feed the target course.
	//
	//   a ─┐               ┌─ b
	//   b ─┴─ and ── t ── or
	//                      └─ c
	g := Graph{
		Nodes: []Node{
			course("a", 1), course("b", 2), course("c", 3),
			{ID: "and", Kind: KindAnd},
			{ID: "or", Kind: KindOr},
			course("t", 10),
		},
		Edges: []Edge{
			{Source: "a", Target: "and"},
			{Source: "b", Target: "and"},
			{Source: "b", Target: "or"},
			{Source: "c", Target: "or"},
			{Source: "and", Target: "t"},
			{Source: "or", Target: "t"},
		},
	}

	tests := []struct {
		name      string
		completed []int
		wantAnd   bool
		wantOr    bool
	}{
		{"NothingDone", nil, false, false},
		{"OnlyA", []int{1}, false, false},
		{"OnlyC", []int{3}, false, true},
		{"AandB", []int{1, 2}, true, true},
		{"All", []int{1, 2, 3}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sat := SatisfactionMap(g, tt.completed)
			if sat["and"] != tt.wantAnd {
				t.Errorf("sat[and] = %v, want %v", sat["and"], tt.wantAnd)
			}
			if sat["or"] != tt.wantOr {
				t.Errorf("sat[or] = %v, want %v", sat["or"], tt.wantOr)
			}
		})
	}
}

func TestSatisfactionMap_CourseAndLeafNodes(t *testing.T) {
	g := Graph{Nodes: []Node{
		course("done", 1),
		course("pending", 2),
		{ID: "leaf", Kind: KindLeaf},
	}}

	sat := SatisfactionMap(g, []int{1})

	if !sat["done"] {
		t.Error("completed course not satisfied")
	}
	if sat["pending"] {
		t.Error("incomplete course reported satisfied")
	}
	if sat["leaf"] {
		t.Error("leaf without course id reported satisfied")
	}
}

func TestSatisfactionMap_VacuousConnectors(t *testing.T) {
	g := Graph{Nodes: []Node{
		{ID: "and", Kind: KindAnd},
		{ID: "or", Kind: KindOr},
	}}

	sat := SatisfactionMap(g, nil)

	// An AND with no inputs is vacuously true; an OR with none is false.
	if !sat["and"] {
		t.Error("empty AND not satisfied")
	}
	if sat["or"] {
		t.Error("empty OR satisfied")
	}
}

func TestSatisfactionMap_CyclicInputTerminates(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "x", Kind: KindAnd},
			{ID: "y", Kind: KindAnd},
		},
		Edges: []Edge{
			{Source: "x", Target: "y"},
			{Source: "y", Target: "x"},
		},
	}

	sat := SatisfactionMap(g, nil)

	if sat["x"] || sat["y"] {
		t.Errorf("cyclic connectors evaluated true: %v", sat)
	}
}

func TestUnlockedMap(t *testing.T) {
	// intro ── and ── advanced; stray has no prerequisites.
	g := Graph{
		Nodes: []Node{
			course("intro", 1),
			{ID: "and", Kind: KindAnd},
			course("advanced", 2),
			course("stray", 3),
		},
		Edges: []Edge{
			{Source: "intro", Target: "and"},
			{Source: "and", Target: "advanced"},
		},
	}

	tests := []struct {
		name      string
		completed []int
		want      map[string]bool
	}{
		{
			name:      "NothingDone",
			completed: nil,
			want:      map[string]bool{"intro": true, "and": false, "advanced": false, "stray": true},
		},
		{
			name:      "IntroDone",
			completed: []int{1},
			want:      map[string]bool{"intro": true, "and": true, "advanced": true, "stray": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnlockedMap(g, tt.completed)
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("unlocked[%s] = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}
