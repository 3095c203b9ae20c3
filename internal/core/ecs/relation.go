package ecs

// Relation is a typed edge table between entities: owner → target, each edge
// carrying a payload P. A reverse index (target → owners) backs the
// by-target queries so occupant/stimulus lookups never scan the population.
//
// Both indices preserve insertion order, matching Store query stability.
type Relation[P any] struct {
	fwd map[EntityID]map[EntityID]P
	// ordered views of the two directions
	targets map[EntityID][]EntityID // owner → targets
	owners  map[EntityID][]EntityID // target → owners
}

func NewRelation[P any]() *Relation[P] {
	return &Relation[P]{
		fwd:     make(map[EntityID]map[EntityID]P, 256),
		targets: make(map[EntityID][]EntityID, 256),
		owners:  make(map[EntityID][]EntityID, 64),
	}
}

// Set adds or updates the edge owner→target.
func (r *Relation[P]) Set(owner, target EntityID, payload P) {
	edges, ok := r.fwd[owner]
	if !ok {
		edges = make(map[EntityID]P, 2)
		r.fwd[owner] = edges
	}
	if _, exists := edges[target]; !exists {
		r.targets[owner] = append(r.targets[owner], target)
		r.owners[target] = append(r.owners[target], owner)
	}
	edges[target] = payload
}

// SetExclusive adds the edge owner→target after removing every other edge
// the owner holds. This is the single insertion point that enforces the
// at-most-one-target invariant for exclusive relations.
func (r *Relation[P]) SetExclusive(owner, target EntityID, payload P) {
	for _, t := range append([]EntityID(nil), r.targets[owner]...) {
		if t != target {
			r.Unlink(owner, t)
		}
	}
	r.Set(owner, target, payload)
}

// Unlink removes the edge owner→target if present.
func (r *Relation[P]) Unlink(owner, target EntityID) {
	edges, ok := r.fwd[owner]
	if !ok {
		return
	}
	if _, exists := edges[target]; !exists {
		return
	}
	delete(edges, target)
	if len(edges) == 0 {
		delete(r.fwd, owner)
	}
	r.targets[owner] = cut(r.targets[owner], target)
	if len(r.targets[owner]) == 0 {
		delete(r.targets, owner)
	}
	r.owners[target] = cut(r.owners[target], owner)
	if len(r.owners[target]) == 0 {
		delete(r.owners, target)
	}
}

func (r *Relation[P]) Has(owner, target EntityID) bool {
	_, ok := r.fwd[owner][target]
	return ok
}

func (r *Relation[P]) Get(owner, target EntityID) (P, bool) {
	p, ok := r.fwd[owner][target]
	return p, ok
}

// Targets returns the owner's targets in insertion order. The returned slice
// is a copy; callers may mutate the relation while iterating it.
func (r *Relation[P]) Targets(owner EntityID) []EntityID {
	return append([]EntityID(nil), r.targets[owner]...)
}

// Owners returns all owners holding an edge to target, in insertion order.
func (r *Relation[P]) Owners(target EntityID) []EntityID {
	return append([]EntityID(nil), r.owners[target]...)
}

// Remove drops every edge touching id, in either direction. Satisfies
// Removable so destroyed entities never leave dangling edges.
func (r *Relation[P]) Remove(id EntityID) {
	for _, t := range append([]EntityID(nil), r.targets[id]...) {
		r.Unlink(id, t)
	}
	for _, o := range append([]EntityID(nil), r.owners[id]...) {
		r.Unlink(o, id)
	}
}

func cut(s []EntityID, id EntityID) []EntityID {
	for i, e := range s {
		if e == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
