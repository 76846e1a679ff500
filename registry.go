package elements

import (
	"sync"
	"sync/atomic"
)

var (
	providersMu sync.Mutex
	providers   []Instantiator

	instanceMu sync.Mutex
	instance   atomic.Pointer[selected]

	// discover lists the candidates considered by the first Instance call.
	discover = registered
)

type selected struct {
	Instantiator
}

func init() {
	Register(DefaultInstantiator{})
}

// Register makes an Instantiator a candidate for Instance. Registrations made
// after the first Instance call have no effect on the selection. It panics if
// inst is nil.
func Register(inst Instantiator) {
	if inst == nil {
		panic("elements: Register instantiator is nil")
	}
	providersMu.Lock()
	defer providersMu.Unlock()
	providers = append(providers, inst)
}

func registered() []Instantiator {
	providersMu.Lock()
	defer providersMu.Unlock()
	return append([]Instantiator(nil), providers...)
}

// Instance returns the registered Instantiator with the highest priority.
// Among equal priorities the earliest registration wins. The choice is made
// once, on first use, and kept for the life of the process unless replaced
// with SetInstance.
func Instance() Instantiator {
	if s := instance.Load(); s != nil {
		return s.Instantiator
	}

	instanceMu.Lock()
	defer instanceMu.Unlock()
	if s := instance.Load(); s != nil {
		return s.Instantiator
	}
	var best Instantiator
	for _, inst := range discover() {
		if best == nil || inst.Priority() > best.Priority() {
			best = inst
		}
	}
	debugLog("elements: selected instantiator %T", best)
	instance.Store(&selected{best})
	return best
}

// SetInstance replaces the Instantiator returned by Instance without
// consulting the registrations.
func SetInstance(inst Instantiator) {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance.Store(&selected{inst})
}
