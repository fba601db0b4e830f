package callgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/callgraph"
)

type fakeHierarchy struct {
	subclasses map[string][]string
	methods    map[string]map[string]bool
}

func (h fakeHierarchy) DirectSubclasses(qualifiedClassName string) []string {
	return h.subclasses[qualifiedClassName]
}

func (h fakeHierarchy) DefinesMethod(qualifiedClassName, methodName string) bool {
	return h.methods[qualifiedClassName][methodName]
}

// TestOverrides is scenario S6: Foo.foo is overridden by Bar.foo and
// Quux.foo; Bar.foo is further overridden by Baz.foo (not a direct
// override of Foo.foo, so it does not appear under Foo.foo's entry).
func TestOverrides(t *testing.T) {
	foo := &ast.Define{Name: "foo"}
	classFoo := &ast.Class{Name: "Foo", Body: []ast.Statement{foo}}

	bar := &ast.Define{Name: "foo"}
	classBar := &ast.Class{Name: "Bar", Body: []ast.Statement{bar}}

	source := &ast.Source{Statements: []ast.Statement{classFoo, classBar}}

	hierarchy := fakeHierarchy{
		subclasses: map[string][]string{
			"Foo": {"Bar", "Quux"},
			"Bar": {"Baz"},
		},
		methods: map[string]map[string]bool{
			"Bar":  {"foo": true},
			"Quux": {"foo": true},
			"Baz":  {"foo": true},
		},
	}

	overrides := callgraph.Overrides(hierarchy, source)
	require.Equal(t, []string{"Bar.foo", "Quux.foo"}, overrides["Foo.foo"])
	require.Equal(t, []string{"Baz.foo"}, overrides["Bar.foo"])
}
