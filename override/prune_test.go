package override

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrune(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{
			name: "drops nil and empty containers, keeps zero scalars",
			in:   obj{"a": nil, "b": obj{}, "c": arr{}, "d": 0, "e": false, "f": ""},
			want: obj{"d": 0, "e": false, "f": ""},
		},
		{
			name: "containers emptied by pruning are dropped",
			in:   obj{"g": obj{"h": obj{"i": nil}}, "keep": obj{"x": 1, "y": arr{}}},
			want: obj{"keep": obj{"x": 1}},
		},
		{
			name: "list elements are pruned",
			in:   arr{nil, obj{}, 1, arr{nil}, obj{"task_key": "n0", "depends_on": arr{}}},
			want: arr{1, obj{"task_key": "n0"}},
		},
		{
			name: "scalar passes through",
			in:   "x",
			want: "x",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Prune(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Prune() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrune_Idempotent(t *testing.T) {
	docs := []any{
		obj{"a": obj{"b": arr{obj{}, nil}}, "c": 1},
		arr{obj{"x": nil}, arr{}, "s"},
		obj{"name": "wf", "tasks": arr{obj{"task_key": "n0", "libraries": arr{}}}},
	}
	for _, d := range docs {
		once := Prune(d)
		if diff := cmp.Diff(once, Prune(once)); diff != "" {
			t.Errorf("Prune not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestPrune_DoesNotMutate(t *testing.T) {
	in := obj{"a": nil, "b": obj{"c": arr{}}}
	before := clone(in)
	Prune(in)
	if diff := cmp.Diff(before, any(in)); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}
