package ecs

// World is the top-level entity container. It owns the entity pool, the
// store registry, and a deferred destruction queue flushed by CleanupSystem
// at tick end. DestroyNow exists for the one case (room deletion) where the
// caller must observe the entity gone before its own call returns.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// DestroyNow removes the entity and all its component/relation data
// immediately, bypassing the queue.
func (w *World) DestroyNow(id EntityID) {
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// FlushDestroyQueue destroys all queued entities and clears their data.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.DestroyNow(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
