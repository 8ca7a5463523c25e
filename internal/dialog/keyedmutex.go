// internal/dialog/keyedmutex.go
package dialog

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

// keyedMutex serializes turns per user identifier with striped locks, so a
// user's two rapid messages apply as atomic read-modify-writes while
// different users proceed in parallel. Distinct keys can share a stripe;
// that only costs a little parallelism, never correctness.
type keyedMutex struct {
	shards [lockShards]sync.Mutex
}

func (k *keyedMutex) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key))
	mu := &k.shards[h.Sum32()%lockShards]
	mu.Lock()
	return mu
}
