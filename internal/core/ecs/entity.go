package ecs

import "strconv"

// EntityID packs a 32-bit slot index in the low bits and a 32-bit generation
// in the high bits. The generation bumps on destroy, so a stale handle to a
// recycled slot never passes an Alive check.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// String renders the raw handle value. Rooms created without an explicit ID
// use this as their default identifier.
func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// EntityPool allocates entity handles with generational indices. Destroyed
// slots go onto a free list and are reused with a bumped generation.
//
// Slot 0 is reserved and never handed out: the zero handle is the
// "unassigned" sentinel everywhere, so it must not collide with a live
// entity.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	p := &EntityPool{
		generations: make([]uint32, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
	// Burn slot 0 with a non-zero generation so handle 0 never passes
	// Alive and Destroy(0) stays a no-op.
	p.generations = append(p.generations, 1)
	p.nextIndex = 1
	return p
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *EntityPool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already destroyed (stale handle)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
