package facade

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

type typeKey struct {
	wrapped reflect.Type
	spec    *Spec
}

// typeCache memoizes adapter types per (wrapped type, spec) pair. The
// singleflight group guarantees a single build per key; losers of the race
// receive the winner's type, and a stored type is never rebuilt for the
// lifetime of the cache.
type typeCache struct {
	types sync.Map // typeKey -> *AdapterType
	group singleflight.Group
}

func (c *typeCache) getOrBuild(key typeKey, build func() *AdapterType) *AdapterType {
	if v, ok := c.types.Load(key); ok {
		return v.(*AdapterType)
	}
	flight := fmt.Sprintf("%x/%p", reflect.ValueOf(key.wrapped).Pointer(), key.spec)
	v, _, _ := c.group.Do(flight, func() (any, error) {
		if v, ok := c.types.Load(key); ok {
			return v, nil
		}
		t := build()
		c.types.Store(key, t)
		return t, nil
	})
	return v.(*AdapterType)
}
