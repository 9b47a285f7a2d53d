// Package registry maintains the ordered, name-keyed collection of
// registered tools owned by one engine handle.
//
// The registry is append-only: tools are never individually removed, so
// every index handed out stays valid for the registry's lifetime and
// enumeration order always equals registration order.
package registry
