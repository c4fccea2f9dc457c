package domain

// CacheCleaner frees whatever memory and disk caches can be freed. It never fails: caches which can't be cleared
// are simply left alone.
type CacheCleaner interface {
	ClearCaches()
}
