package ecs

// Each2 iterates over entities that have both component A and B, in A's
// insertion order.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	for _, id := range sa.order {
		if b, ok := sb.data[id]; ok {
			fn(id, sa.data[id], b)
		}
	}
}
