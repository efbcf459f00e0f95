package hooks

import (
	"github.com/hellodex/daofin-dashboard/session"
)

// bind attaches r to the session client: it is applied now and again on
// every connect or disconnect. Closing r detaches it.
func bind[K comparable, T any](s *session.Context, r *Resource[K, T], key K) *Resource[K, T] {
	unsubscribe := s.Subscribe(r.SetClient)
	r.mu.Lock()
	r.release = unsubscribe
	r.mu.Unlock()

	r.Update(s.Client(), key)
	return r
}

func emptyKey(key string) bool {
	return key == ""
}
