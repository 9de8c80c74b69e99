package tokenstore

import "sync"

// in-memory revocation store for logged-out token ids. For a multi-process
// deployment this would move to Redis or the database.
var (
	mu      sync.RWMutex
	revoked = map[string]struct{}{}
)

func Revoke(jti string) {
	if jti == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	revoked[jti] = struct{}{}
}

func IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	mu.RLock()
	defer mu.RUnlock()
	_, ok := revoked[jti]
	return ok
}
