package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/database/mongoclient"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/base/metrics"
	"github.com/mazad/goapi/domain"
)

const (
	queryMaxTime = 20 * time.Second
	slowQuery    = 500 * time.Millisecond
	// concurrent transactions per process, more wait for a free slot
	sessionSlots = 10
)

var (
	timeNow = time.Now
	met     = metrics.New("query")
)

type impl struct {
	client     *mongoclient.Client
	checkIndex bool
	slots      chan struct{}
}

// New returns the mongo backed store. checkIndex runs explain on reads and rejects
// collection scans, it is meant for staging.
func New(client *mongoclient.Client, checkIndex bool) Mongo {
	return &impl{
		client:     client,
		checkIndex: checkIndex,
		slots:      make(chan struct{}, sessionSlots),
	}
}

func (im *impl) coll(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

// begin scopes the logger to one call and returns the func that records its timing
func (im *impl) begin(c ctx.Ctx, table domain.Table, action string, fields log.Fields) (ctx.Ctx, func()) {
	fields["table"] = table
	fields["action"] = action
	c = ctx.WithLogFields(c, fields)
	start := timeNow()
	timer := met.BumpTime("time", "func", action, "table", string(table))
	return c, func() {
		timer.End()
		if elapsed := timeNow().Sub(start); elapsed >= slowQuery {
			met.BumpSum("slowlog", 1, "table", string(table), "action", action)
			c.WithFields(log.Fields{
				"startTime":  start.Unix(),
				"durationMs": elapsed.Milliseconds(),
			}).Warn("mongo slowlog")
		}
	}
}

func (im *impl) fail(c ctx.Ctx, msg string, err error) error {
	if mongo.IsNetworkError(err) {
		met.BumpSum("conn.err", 1)
	}
	c.WithField("err", err).Error(msg)
	return err
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	c, done := im.begin(c, table, "insert", log.Fields{"insert": insert})
	defer done()

	if _, err := im.coll(table).InsertOne(c, insert); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return im.fail(c, "InsertOne failed", err)
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	c, done := im.begin(c, table, "findone", log.Fields{"query": query})
	defer done()

	if err := im.checkQueryIndex(c, table, "find", bson.E{Key: "filter", Value: query}); err != nil {
		return err
	}

	res := im.coll(table).FindOne(c, query, options.FindOne().SetMaxTime(queryMaxTime))
	if err := res.Decode(result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return im.fail(c, "FindOne failed", err)
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	c, done := im.begin(c, table, "count", log.Fields{"query": selector})
	defer done()

	if err := im.checkQueryIndex(c, table, "count", bson.E{Key: "query", Value: selector}); err != nil {
		return 0, err
	}

	n, err := im.coll(table).CountDocuments(c, selector, options.Count().SetMaxTime(queryMaxTime))
	if err != nil {
		return 0, im.fail(c, "CountDocuments failed", err)
	}
	return int(n), nil
}

// sortDoc turns "a", "-b" into {a: 1, b: -1} keeping the order
func sortDoc(fields []string) bson.D {
	d := bson.D{}
	for _, f := range fields {
		switch {
		case f == "":
		case strings.HasPrefix(f, "-"):
			d = append(d, bson.E{Key: f[1:], Value: -1})
		default:
			d = append(d, bson.E{Key: f, Value: 1})
		}
	}
	return d
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	return im.Find(c, table, offset, limit, []string{sort}, query, results)
}

func (im *impl) Find(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error {
	c, done := im.begin(c, table, "find", log.Fields{"query": query, "sort": sortFields})
	defer done()

	if err := im.checkQueryIndex(c, table, "find", bson.E{Key: "filter", Value: query}); err != nil {
		return err
	}

	opts := options.Find().
		SetMaxTime(queryMaxTime).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	if s := sortDoc(sortFields); len(s) > 0 {
		opts.SetSort(s)
	}

	cursor, err := im.coll(table).Find(c, query, opts)
	if err != nil {
		return im.fail(c, "Find failed", err)
	}
	defer cursor.Close(c)

	if err := cursor.All(c, results); err != nil {
		return im.fail(c, "cursor.All failed", err)
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	c, done := im.begin(c, table, "remove", log.Fields{"query": selector})
	defer done()

	res, err := im.coll(table).DeleteOne(c, selector)
	if err != nil {
		return im.fail(c, "DeleteOne failed", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Update(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error {
	c, done := im.begin(c, table, "update", log.Fields{"query": selector, "update": update})
	defer done()

	res, err := im.coll(table).UpdateOne(c, selector, update, options.Update().SetUpsert(upsert))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return im.fail(c, "UpdateOne failed", err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RunWithTransaction runs fn in a single transaction attempt. A write conflict with a concurrent
// transaction surfaces as domain.ErrVersionConflict so callers apply their own retry policy,
// other transient aborts surface as domain.ErrTransient.
func (im *impl) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	defer met.BumpTime("time", "func", "transaction").End()

	select {
	case <-c.Done():
		return xerrors.Errorf("waiting for transaction slot: %w", transient(c.Err()))
	case im.slots <- struct{}{}:
	}
	defer func() { <-im.slots }()

	session, err := im.client.StartSession()
	if err != nil {
		return transient(im.fail(c, "StartSession failed", err))
	}
	defer session.EndSession(context.Background())

	err = mongo.WithSession(c, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return err
		}
		if err := run(ctx.Ctx{Context: sc, Logger: c.Logger}); err != nil {
			if aerr := session.AbortTransaction(context.Background()); aerr != nil {
				c.WithField("err", aerr).Warn("AbortTransaction failed")
			}
			return err
		}
		return commit(sc, session)
	})
	return classifyTxnError(c, err)
}

// commit retries only when the server could not tell whether the commit applied
func commit(sc mongo.SessionContext, session mongo.Session) error {
	var err error
	for i := 0; i < commitAttempts; i++ {
		err = session.CommitTransaction(sc)
		var se mongo.ServerError
		if err == nil || !errors.As(err, &se) || !se.HasErrorLabel(unknownCommitLabel) {
			return err
		}
	}
	return err
}

func classifyTxnError(c ctx.Ctx, err error) error {
	switch {
	case err == nil:
		return nil
	case isWriteConflict(err):
		met.BumpSum("transaction.conflict", 1)
		c.WithField("err", err).Info("transaction write conflict")
		return xerrors.Errorf("transaction aborted: %v: %w", err, domain.ErrVersionConflict)
	case isTransient(err):
		met.BumpSum("transaction.transient", 1)
		c.WithField("err", err).Warn("transaction aborted")
		return transient(err)
	}
	return err
}

const (
	transientTxnLabel  = "TransientTransactionError"
	unknownCommitLabel = "UnknownTransactionCommitResult"
	writeConflictCode  = 112
	commitAttempts     = 3
)

func isWriteConflict(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(writeConflictCode)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorLabel(transientTxnLabel)
}

// transient wraps err so that errors.Is(err, domain.ErrTransient) holds
func transient(err error) error {
	if err == nil || errors.Is(err, domain.ErrTransient) {
		return err
	}
	return &transientError{err: err}
}

type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return fmt.Sprintf("%s: %v", domain.ErrTransient, e.err)
}

func (e *transientError) Is(target error) bool {
	return target == domain.ErrTransient
}

func (e *transientError) Unwrap() error {
	return e.err
}

func (im *impl) checkQueryIndex(c ctx.Ctx, table domain.Table, action string, query bson.E) error {
	// explain is not allowed inside a transaction
	if !im.checkIndex || mongo.SessionFromContext(c) != nil {
		return nil
	}
	res := im.client.Database(im.client.DbName).RunCommand(c, bson.D{
		{Key: "explain", Value: bson.D{{Key: action, Value: string(table)}, query}},
		{Key: "verbosity", Value: "queryPlanner"},
	})

	var plan bson.M
	if err := res.Decode(&plan); err != nil {
		c.WithField("err", err).Warn("explain decode failed")
		met.BumpSum("checkQueryIndex.err", 1)
		return nil
	}

	// the winning plan layout differs between server versions, match on the stage name
	if strings.Contains(fmt.Sprintf("%v", plan), "COLLSCAN") {
		c.WithField("query", query).Warn("COLLSCAN")
		return ErrCollScan
	}
	return nil
}
