package callgraph

import "github.com/pyscope/pyscope/internal/ast"

// Hierarchy is the class-hierarchy collaborator the override map needs
// beyond what §6 names explicitly for call resolution: given a fully
// qualified class name, which classes directly subclass it, and does a
// given class directly define a given method (as opposed to inheriting
// it). A real implementation backs this with the same environment that
// populates resolve.Environment.
type Hierarchy interface {
	DirectSubclasses(qualifiedClassName string) []string
	DefinesMethod(qualifiedClassName, methodName string) bool
}

// Overrides builds the override map of §4.4: for every class C in source
// with method m, for every direct subclass S of C that itself defines m,
// record C.m → S.m. Transitive overrides are not listed; they surface
// through their immediate parent's own entry.
func Overrides(hierarchy Hierarchy, source *ast.Source) map[string][]string {
	overrides := map[string][]string{}
	for class := range ast.Classes(source.Statements) {
		qualifiedClass := ast.QualifiedClassName(class, source.Qualifier)
		for _, stmt := range class.Body {
			method, ok := stmt.(*ast.Define)
			if !ok {
				continue
			}
			base := qualifiedClass + "." + method.Name
			for _, sub := range hierarchy.DirectSubclasses(qualifiedClass) {
				if !hierarchy.DefinesMethod(sub, method.Name) {
					continue
				}
				overrides[base] = append(overrides[base], sub+"."+method.Name)
			}
		}
	}
	return overrides
}
