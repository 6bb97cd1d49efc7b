package utils

import (
	"log"
	"time"
)

// RetryOnce runs fn and, if it fails, retries a single time after a short
// pause. Reserved for transient read-query failures; user-facing writes are
// never retried.
func RetryOnce(op string, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	log.Printf("Warning: %s failed, retrying once: %v", op, err)
	time.Sleep(200 * time.Millisecond)
	return fn()
}
