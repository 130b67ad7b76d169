package expiry

import (
	"sync"
	"time"

	"shuul-console/internal/metrics"
)

// Registry owns the one-shot logout tasks armed when a session accepts a
// bearer token. Every task handle stays owned here so logout and shutdown
// can cancel deterministically instead of leaving a closure to fire against
// a session that is already gone.
type Registry struct {
	mu    sync.Mutex
	tasks map[string]*time.Timer
}

func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*time.Timer),
	}
}

// Arm schedules fn to run once after d, replacing any task already armed
// for the same key.
func (r *Registry) Arm(key string, d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tasks[key]; ok {
		existing.Stop()
		delete(r.tasks, key)
	}

	r.tasks[key] = time.AfterFunc(d, func() {
		r.mu.Lock()
		delete(r.tasks, key)
		metrics.SessionExpiryTasks.Set(float64(len(r.tasks)))
		r.mu.Unlock()
		fn()
	})
	metrics.SessionExpiryTasks.Set(float64(len(r.tasks)))
}

// Cancel stops and forgets the task for key, reporting whether one existed.
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[key]
	if !ok {
		return false
	}

	task.Stop()
	delete(r.tasks, key)
	metrics.SessionExpiryTasks.Set(float64(len(r.tasks)))
	return true
}

func (r *Registry) Armed(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tasks[key]
	return ok
}

func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Close cancels every armed task.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, task := range r.tasks {
		task.Stop()
		delete(r.tasks, key)
	}
	metrics.SessionExpiryTasks.Set(0)
}
