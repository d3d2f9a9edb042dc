package internal

// ReconstructPath rebuilds the handle chain from current back to start by
// following parentOf, and returns it start-first. The walk gives up after
// limit hops or when a handle has no parent before start is reached, so a
// malformed chain is reported instead of looping.
func ReconstructPath[Handle comparable](
	parentOf func(Handle) (Handle, bool),
	current Handle,
	start Handle,
	limit int,
) ([]Handle, bool) {
	path := []Handle{current}
	for current != start {
		if len(path) > limit {
			return nil, false
		}
		previous, exists := parentOf(current)
		if !exists {
			return nil, false
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
