// Package query is the entity store used by every repository. It wraps the mongo driver
// with metrics, slow query logging, an optional COLLSCAN guard and session-limited
// multi-document transactions.
package query

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/domain"
)

var (
	// ErrNotFound is returned when a selector matches no document
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is returned when a write violates a unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is returned for unindexed queries when index checking is on
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

// Mongo is the storage surface repositories depend on
type Mongo interface {
	// Insert returns ErrDuplicateKey if a unique index is violated
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne decodes the first match into result, ErrNotFound if there is none
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	Count(context ctx.Ctx, table domain.Table, selector interface{}) (int, error)

	// Search sorts by a single field, "field" ascending or "-field" descending, "" for none
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Find sorts by several fields in order, they should follow a compound index prefix
	Find(context ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error

	// Remove deletes one document, ErrNotFound if selector matches nothing
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// Update applies a raw update document ($set, $inc, ...) to one document.
	// ErrNotFound when upsert is false and nothing matched, ErrDuplicateKey on unique index violation.
	// A selector that includes a version field makes this a compare-and-set.
	Update(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// RunWithTransaction runs `run` once inside a multi-document transaction.
	// A write conflict with another transaction is returned wrapping domain.ErrVersionConflict,
	// timeouts, network errors and other transient aborts wrapping domain.ErrTransient.
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
