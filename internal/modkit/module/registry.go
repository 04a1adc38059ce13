package module

import "sync"

// process wide port registry
// the API composition root registers each module as it is built so modules built
// later can resolve ports of earlier ones by name instead of being handed them
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a port set under name; a later call for the same name replaces it
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// RegisterModule stores m.Ports() under m.Name()
func RegisterModule(m Module) { Register(m.Name(), m.Ports()) }

func lookup(name string) (any, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := reg[name]
	return v, ok
}

// PortsAs returns the whole port set registered under name as T
func PortsAs[T any](name string) (T, bool) {
	var zero T
	v, ok := lookup(name)
	if !ok {
		return zero, false
	}
	out, ok := v.(T)
	if !ok {
		return zero, false
	}
	return out, true
}

// Resolve finds a port of type T in the set registered under name
// the set itself or any exported field of it may satisfy T
func Resolve[T any](name string) (T, bool) {
	v, ok := lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	return portIn[T](v)
}

// Reset empties the registry; tests only
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
