package rdf

import "testing"

func TestIsomorphic(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "ground graphs",
			a:    "<http://e/s> <http://e/p> 1 .\n",
			b:    "<http://e/s> <http://e/p> 1 .\n",
			want: true,
		},
		{
			name: "renamed cycle",
			a:    "_:a <http://e/p> _:b .\n_:b <http://e/p> _:a .\n",
			b:    "_:x <http://e/p> _:y .\n_:y <http://e/p> _:x .\n",
			want: true,
		},
		{
			name: "nested versus labeled",
			a:    "<http://e/s> <http://e/p> [ <http://e/q> 1 ] .\n",
			b:    "<http://e/s> <http://e/p> _:n .\n_:n <http://e/q> 1 .\n",
			want: true,
		},
		{
			name: "cycle versus two loops",
			a:    "_:a <http://e/p> _:b .\n_:b <http://e/p> _:a .\n",
			b:    "_:x <http://e/p> _:x .\n_:y <http://e/p> _:y .\n",
			want: false,
		},
		{
			name: "different literal",
			a:    "<http://e/s> <http://e/p> 1 .\n",
			b:    "<http://e/s> <http://e/p> 2 .\n",
			want: false,
		},
		{
			name: "different size",
			a:    "<http://e/s> <http://e/p> 1 .\n",
			b:    "<http://e/s> <http://e/p> 1 , 2 .\n",
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := mustParseTurtle(t, tc.a).Graph
			b := mustParseTurtle(t, tc.b).Graph
			if got := Isomorphic(a, b); got != tc.want {
				t.Fatalf("Isomorphic = %v, want %v", got, tc.want)
			}
		})
	}
}
