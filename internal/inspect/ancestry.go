package inspect

import "github.com/mkears/pyscout/internal/pysrc"

// ancestorChain returns cls followed by its resolvable ancestors in
// breadth-first discovery order. Base names missing from the index
// (imported or built-in bases) are skipped. Every name is enqueued at most
// once, so diamond hierarchies yield each ancestor a single time and
// cyclic declarations terminate.
func ancestorChain(ix *ClassIndex, cls *pysrc.Node) []*pysrc.Node {
	chain := []*pysrc.Node{cls}
	visited := map[string]bool{cls.Name: true}

	var queue []string
	enqueue := func(bases []string) {
		for _, name := range bases {
			if !visited[name] && ix.Has(name) {
				visited[name] = true
				queue = append(queue, name)
			}
		}
	}

	enqueue(cls.Bases)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		node, ok := ix.Lookup(name)
		if !ok {
			continue
		}
		chain = append(chain, node)
		enqueue(node.Bases)
	}
	return chain
}
