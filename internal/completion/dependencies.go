package completion

import (
	"sort"

	"github.com/gnolang/anthem/internal/fol"
)

// HasPositiveDependencyCycle reports whether p reaches itself through
// positive dependencies. Built-in predicates are not followed.
func HasPositiveDependencyCycle(p *fol.PredicateDeclaration) bool {
	return reachesItself(p, func(d *fol.PredicateDeclaration, sign fol.Sign) bool {
		return sign.IsPositive() && !d.IsBuiltIn()
	})
}

// HasPrivateDependencyCycle reports whether p reaches itself through
// dependencies on private predicates. Public and built-in predicates end the
// search; the result is only meaningful for private predicates.
func HasPrivateDependencyCycle(p *fol.PredicateDeclaration) bool {
	return reachesItself(p, func(d *fol.PredicateDeclaration, _ fol.Sign) bool {
		return !d.IsPublic() && !d.IsBuiltIn()
	})
}

func reachesItself(p *fol.PredicateDeclaration, follow func(*fol.PredicateDeclaration, fol.Sign) bool) bool {
	visited := make(map[*fol.PredicateDeclaration]bool)

	var dfs func(current *fol.PredicateDeclaration) bool
	dfs = func(current *fol.PredicateDeclaration) bool {
		for _, dep := range sortedDependencies(current) {
			if !follow(dep, current.Dependencies[dep]) {
				continue
			}
			if dep == p {
				return true
			}
			if visited[dep] {
				continue
			}
			visited[dep] = true
			if dfs(dep) {
				return true
			}
		}
		return false
	}

	return dfs(p)
}

// PositiveDependencyCycles lists the cycles of positive dependencies among
// predicates, each as the path from its first predicate back to itself.
// A program without such cycles is tight.
func PositiveDependencyCycles(predicates []*fol.PredicateDeclaration) [][]*fol.PredicateDeclaration {
	c := &cycle{
		visited: make(map[*fol.PredicateDeclaration]bool),
		onStack: make(map[*fol.PredicateDeclaration]bool),
	}

	for _, p := range predicates {
		if !c.visited[p] {
			c.dfs(p)
		}
	}
	return c.cycles
}

type cycle struct {
	visited map[*fol.PredicateDeclaration]bool
	onStack map[*fol.PredicateDeclaration]bool
	stack   []*fol.PredicateDeclaration
	cycles  [][]*fol.PredicateDeclaration
}

func (c *cycle) dfs(p *fol.PredicateDeclaration) {
	c.visited[p] = true
	c.onStack[p] = true
	c.stack = append(c.stack, p)

	for _, dep := range sortedDependencies(p) {
		if !p.Dependencies[dep].IsPositive() || dep.IsBuiltIn() {
			continue
		}
		if !c.visited[dep] {
			c.dfs(dep)
		} else if c.onStack[dep] {
			start := indexOf(c.stack, dep)
			path := append(append([]*fol.PredicateDeclaration(nil), c.stack[start:]...), dep)
			c.cycles = append(c.cycles, path)
		}
	}

	c.stack = c.stack[:len(c.stack)-1]
	c.onStack[p] = false
}

func indexOf(slice []*fol.PredicateDeclaration, item *fol.PredicateDeclaration) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// sortedDependencies returns the dependencies of p in name order so that
// searches are deterministic.
func sortedDependencies(p *fol.PredicateDeclaration) []*fol.PredicateDeclaration {
	out := make([]*fol.PredicateDeclaration, 0, len(p.Dependencies))
	for d := range p.Dependencies {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Arity < out[j].Arity
	})
	return out
}
