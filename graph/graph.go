package graph

import "errors"

// ErrCyclicDependency is returned when the prerequisite pairs contain a cycle
// and no valid teaching order exists.
var ErrCyclicDependency = errors.New("cyclic dependency detected in courses")

// CoursePair is one prerequisite relation: RequiredCourse must be taken
// before DesiredCourse.
type CoursePair struct {
	DesiredCourse  string `json:"desiredCourse"`
	RequiredCourse string `json:"requiredCourse"`
}

// depGraph is the working adjacency structure built from a flat pair list.
// nodes records first-seen order so the sort stays deterministic; map
// iteration order must never leak into the output.
type depGraph struct {
	adjacency map[string][]string
	inDegree  map[string]int
	nodes     []string
}

func build(pairs []CoursePair) *depGraph {
	g := &depGraph{
		adjacency: make(map[string][]string),
		inDegree:  make(map[string]int),
	}

	for _, pair := range pairs {
		g.addNode(pair.DesiredCourse)
		g.addNode(pair.RequiredCourse)

		g.adjacency[pair.RequiredCourse] = append(g.adjacency[pair.RequiredCourse], pair.DesiredCourse)
		g.inDegree[pair.DesiredCourse]++
	}

	return g
}

func (g *depGraph) addNode(name string) {
	if _, seen := g.inDegree[name]; seen {
		return
	}
	g.inDegree[name] = 0
	g.nodes = append(g.nodes, name)
}

// SortCourses returns a valid teaching order for the given prerequisite
// pairs using Kahn's algorithm. Nodes that tie at in-degree zero are emitted
// in the order they were first seen in the input (FIFO), so the output is
// stable for a given input. Returns ErrCyclicDependency when the pairs
// contain a cycle.
func SortCourses(pairs []CoursePair) ([]string, error) {
	g := build(pairs)

	queue := make([]string, 0, len(g.nodes))
	for _, name := range g.nodes {
		if g.inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		course := queue[0]
		queue = queue[1:]
		sorted = append(sorted, course)

		for _, next := range g.adjacency[course] {
			g.inDegree[next]--
			if g.inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		return nil, ErrCyclicDependency
	}

	return sorted, nil
}
