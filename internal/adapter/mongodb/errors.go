package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gitter-badger/metadatastore/internal/domain"
)

// mapError converts driver errors into domain errors. The driver error
// always stays in the chain next to the sentinel, so callers can still
// inspect it with errors.As or the mongo predicates.
// context.Canceled is NOT mapped; it passes through.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	// caller cancellation passes through as-is
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	// unique index violation -> domain.ErrDuplicateKey
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w: %w", entity, domain.ErrDuplicateKey, err)
	}

	// mongo.ErrNoDocuments -> domain.ErrNotFound
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}

	// unreachable or unresponsive server -> domain.ErrStorageUnavailable.
	// Deadline overruns land here too; context.DeadlineExceeded stays in the
	// chain for callers that branch on it.
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w: %w", entity, domain.ErrStorageUnavailable, err)
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s: %w", entity, err)
}
