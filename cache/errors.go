package cache

import "fmt"

// CacheError reports a failed cache operation. Cache failures are always
// recoverable for readers (fall through to the repository); writers decide
// whether a stale entry is tolerable.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}
