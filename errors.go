package eule

import (
	"errors"
	"fmt"

	"github.com/trouchet/eule/cluster"
)

var (
	// ErrUnknownMethod is returned for an unrecognized clustering method.
	ErrUnknownMethod = cluster.ErrUnknownMethod

	// ErrNotComputed is returned when cluster diagrams are requested before
	// Compute has run.
	ErrNotComputed = errors.New("eule: cluster diagrams not computed")
)

// ErrKeyNotFound indicates a lookup of a set key the family does not hold.
type ErrKeyNotFound struct {
	Key string
}

func (e *ErrKeyNotFound) Error() string {
	return fmt.Sprintf("eule: set key not found: %q", e.Key)
}

// ErrClusterNotFound indicates a lookup of a non-existent cluster id.
type ErrClusterNotFound struct {
	Cluster int
}

func (e *ErrClusterNotFound) Error() string {
	return fmt.Sprintf("eule: cluster %d not found", e.Cluster)
}
