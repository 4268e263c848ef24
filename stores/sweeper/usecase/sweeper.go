package usecase

import (
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/mazad/goapi/base/counter"
	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/goroutine"
	"github.com/mazad/goapi/base/log"
	"github.com/mazad/goapi/base/metrics"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/keys"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/service/redis"
)

const expiryNote = "auction ended"

var (
	timeNow = time.Now
	met     = metrics.New("sweeper")
	lockKey = keys.RedisKey(keys.PfxSweeperLock, "expiry")
)

type SweeperCfg struct {
	ListingRepo listing.Repo
	ListingUC   listing.Usecase
	Redis       redis.Service
	Interval    time.Duration
	LockTtl     time.Duration
	BatchSize   int
	Workers     int
}

// Sweeper moves active listings past their end time to Expired. It does not create winner orders.
type Sweeper struct {
	listingRepo listing.Repo
	listingUC   listing.Usecase
	redis       redis.Service
	interval    time.Duration
	lockTtl     time.Duration
	batchSize   int
	workers     int
	stoppedCh   chan struct{}
}

func New(cfg *SweeperCfg) *Sweeper {
	return &Sweeper{
		listingRepo: cfg.ListingRepo,
		listingUC:   cfg.ListingUC,
		redis:       cfg.Redis,
		interval:    cfg.Interval,
		lockTtl:     cfg.LockTtl,
		batchSize:   cfg.BatchSize,
		workers:     cfg.Workers,
		stoppedCh:   make(chan struct{}),
	}
}

func (s *Sweeper) Start(c ctx.Ctx) {
	go s.loop(c)
}

// Wait blocks until the loop has returned after c is done
func (s *Sweeper) Wait() {
	<-s.stoppedCh
}

func (s *Sweeper) loop(c ctx.Ctx) {
	defer close(s.stoppedCh)
	for {
		select {
		case <-c.Done():
			return
		case <-time.After(s.interval):
			// a panicking pass is logged and the next tick starts a fresh one
			<-goroutine.RecoverableGo(c, "sweep", func() {
				if _, err := s.Sweep(c); err != nil {
					c.WithField("err", err).Error("sweeper.Sweep failed")
				}
			})
		}
	}
}

// Sweep runs one pass and returns the number of expired listings. Only the instance
// holding the redis lock sweeps, the others return 0.
func (s *Sweeper) Sweep(c ctx.Ctx) (int, error) {
	token := []byte(domain.NewId())
	ok, err := s.redis.SetNX(c, lockKey, token, s.lockTtl)
	if err != nil {
		return 0, err
	}
	if !ok {
		c.Debug("sweep lock held elsewhere")
		return 0, nil
	}
	defer func() {
		if released, err := s.redis.DelIfEqual(c, lockKey, token); err != nil {
			c.WithField("err", err).Warn("redis.DelIfEqual failed")
		} else if !released {
			c.Warn("sweep outlived its lock")
		}
	}()

	now := timeNow()
	total := 0
	failed := counter.NewCounter()
	for {
		items, err := s.listingRepo.FindAll(c,
			listing.WithStatuses(listing.StatusActive),
			listing.WithEndAtBefore(now),
			listing.WithSort(listing.SortEndAsc),
			listing.WithPagination(0, s.batchSize),
		)
		if err != nil {
			return total, err
		}
		if len(items) == 0 {
			break
		}

		n := s.expireAll(c, items, failed)
		total += n
		// expired listings drop out of the query, a batch without progress would repeat forever
		if n == 0 || len(items) < s.batchSize {
			break
		}
	}

	if n := failed.Count(); n > 0 {
		met.BumpSum("failed", float64(n))
	}
	if total > 0 || failed.Count() > 0 {
		met.BumpSum("expired", float64(total))
		c.WithFields(log.Fields{
			"expired": total,
			"failed":  failed.Count(),
		}).Info("sweep done")
	}
	return total, nil
}

func (s *Sweeper) expireAll(c ctx.Ctx, items []*listing.Listing, failed *counter.Counter) int {
	b := goroutines.NewBatch(s.workers, goroutines.WithBatchSize(len(items)))
	defer b.Close()

	expired := counter.NewCounter()
	for _, item := range items {
		id := item.Id
		b.Queue(func() (interface{}, error) {
			l, err := s.listingUC.Transition(c, domain.SystemActor(), id, ExpireIfEnded)
			if err != nil {
				c.WithFields(log.Fields{"err": err, "listingId": id}).Warn("listingUC.Transition failed")
				failed.Add(1)
				return nil, err
			}
			if l.Status == listing.StatusExpired {
				expired.Add(1)
			}
			return l, nil
		})
	}
	b.QueueComplete()

	for range b.Results() {
	}
	return expired.Count()
}

// ExpireIfEnded finalizes l as Expired when it is still active past its end time and
// leaves it alone otherwise, e.g. when a purchase or an extension won the race.
func ExpireIfEnded(tc ctx.Ctx, l listing.Listing, now time.Time) (listing.Listing, listing.Event, error) {
	fields := log.Fields{"listingId": l.Id, "status": l.Status}
	switch {
	case l.Status.IsTerminal():
		tc.WithFields(fields).Debug("listing already finalized")
		return l, listing.Event{}, nil
	case l.Status != listing.StatusActive || !l.HasEnded(now):
		tc.WithFields(fields).Debug("listing no longer due for expiry")
		return l, listing.Event{}, nil
	}
	return listing.Finalize(l, domain.SystemUserId, listing.StatusExpired, expiryNote, now)
}
