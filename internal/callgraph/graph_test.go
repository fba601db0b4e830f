package callgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/callgraph"
	"github.com/pyscope/pyscope/internal/resolve"
	"github.com/pyscope/pyscope/internal/token"
)

func callAccess(names ...string) *ast.Access {
	acc := ast.NewAccess(token.ReferenceLocation{}, names...)
	acc.Elements = append(acc.Elements, &ast.Call{})
	return acc
}

func namedCallable(qualifiedName string) resolve.Element {
	return resolve.Element{Kind: resolve.ElementSignature, Callable: resolve.Callable{Kind: resolve.Named, QualifiedName: qualifiedName}}
}

// TestCreateConstructionEdge is scenario S1: Foo.quux calling Foo.bar via
// self.bar() produces a single edge Foo.quux -> Foo.bar.
func TestCreateConstructionEdge(t *testing.T) {
	barCall := callAccess("self", "bar")
	quux := &ast.Define{NodeID: 3, Name: "quux", Body: []ast.Statement{&ast.Return{Value: barCall}}}
	bar := &ast.Define{NodeID: 2, Name: "bar", Body: []ast.Statement{&ast.Return{Value: &ast.IntLiteral{Value: 10}}}}
	init := &ast.Define{NodeID: 1, Name: "__init__", Body: []ast.Statement{&ast.Pass{}}}
	foo := &ast.Class{Name: "Foo", Body: []ast.Statement{init, bar, quux}}
	init.Parent, bar.Parent, quux.Parent = foo, foo, foo

	source := &ast.Source{Statements: []ast.Statement{foo}}

	store := resolve.NewStore()
	store.Set(resolve.StatementKey{NodeID: 3, StatementIndex: 0}, barCall, namedCallable("Foo.bar"))

	graph := callgraph.Create(store, source)
	require.Equal(t, map[string][]string{"Foo.quux": {"Foo.bar"}}, graph)
}

// TestCreateMutualRecursion is scenario S2: Foo.bar calls Foo.quux and
// vice versa; both edges are present and partition groups them as one SCC.
func TestCreateMutualRecursion(t *testing.T) {
	quuxCall := callAccess("self", "quux")
	barCall := callAccess("self", "bar")
	bar := &ast.Define{NodeID: 1, Name: "bar", Body: []ast.Statement{&ast.Return{Value: quuxCall}}}
	quux := &ast.Define{NodeID: 2, Name: "quux", Body: []ast.Statement{&ast.Return{Value: barCall}}}
	foo := &ast.Class{Name: "Foo", Body: []ast.Statement{bar, quux}}
	bar.Parent, quux.Parent = foo, foo

	source := &ast.Source{Statements: []ast.Statement{foo}}

	store := resolve.NewStore()
	store.Set(resolve.StatementKey{NodeID: 1, StatementIndex: 0}, quuxCall, namedCallable("Foo.quux"))
	store.Set(resolve.StatementKey{NodeID: 2, StatementIndex: 0}, barCall, namedCallable("Foo.bar"))

	graph := callgraph.Create(store, source)
	require.ElementsMatch(t, []string{"Foo.quux"}, graph["Foo.bar"])
	require.ElementsMatch(t, []string{"Foo.bar"}, graph["Foo.quux"])

	sccs := callgraph.Partition(graph)
	require.Len(t, sccs, 1)
	require.ElementsMatch(t, []string{"Foo.bar", "Foo.quux"}, sccs[0])
}

// TestCreateConstructorDependency is scenario S3: B.__init__ constructs an
// A(), so B.__init__ -> A.__init__.
func TestCreateConstructorDependency(t *testing.T) {
	aCtorSite := callAccess("A")
	bCtor := &ast.Define{NodeID: 2, Name: "__init__", Body: []ast.Statement{&ast.Return{Value: aCtorSite}}}
	classB := &ast.Class{Name: "B", Body: []ast.Statement{bCtor}}
	bCtor.Parent = classB

	aCtor := &ast.Define{NodeID: 1, Name: "__init__", Body: []ast.Statement{&ast.Return{Value: &ast.Ident{Name: "self"}}}}
	classA := &ast.Class{Name: "A", Body: []ast.Statement{aCtor}}
	aCtor.Parent = classA

	source := &ast.Source{Statements: []ast.Statement{classA, classB}}

	store := resolve.NewStore()
	store.Set(resolve.StatementKey{NodeID: 2, StatementIndex: 0}, aCtorSite, namedCallable("A.__init__"))

	graph := callgraph.Create(store, source)
	require.Equal(t, map[string][]string{"B.__init__": {"A.__init__"}}, graph)
}

// TestPartitionOrdering is scenario S7: two cycles and a self-loop, with
// one cycle edging into the other, yield a leaves-first component order.
func TestPartitionOrdering(t *testing.T) {
	edges := map[string][]string{
		"c1": {"c2", "c3"},
		"c2": {"c1"},
		"c3": {"c4"},
		"c4": {"c3"},
		"c5": {"c5"},
	}
	sccs := callgraph.Partition(edges)
	require.Len(t, sccs, 3)
	require.ElementsMatch(t, []string{"c3", "c4"}, sccs[0])
	require.ElementsMatch(t, []string{"c1", "c2"}, sccs[1])
	require.ElementsMatch(t, []string{"c5"}, sccs[2])
}

// TestPartitionCoversEveryVertexOnce is the §8 invariant: every vertex
// appears in exactly one component.
func TestPartitionCoversEveryVertexOnce(t *testing.T) {
	edges := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a", "d"},
		"d": {},
	}
	sccs := callgraph.Partition(edges)
	seen := map[string]int{}
	for _, comp := range sccs {
		for _, v := range comp {
			seen[v]++
		}
	}
	require.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, seen)
}
