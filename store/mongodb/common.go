// Package mongodb implements the document-store backed parts of the social
// workflow: the user directory, the friend-request store, the friend graph
// and the review store.
package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"cafehopper/social"
)

// handleError maps driver errors onto the workflow's sentinel errors.
func handleError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return social.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return social.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", resource, err)
}
