package sqlite

import (
	"fmt"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// storeErr wraps a low-level database failure as a store-unavailable error so
// callers can degrade to online-only behavior instead of crashing.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// checkStore guards against typo'd store names reaching the database.
func checkStore(storeName string) error {
	if !domain.ValidStore(storeName) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownStore, storeName)
	}
	return nil
}
