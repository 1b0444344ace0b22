package statelisten

import (
	"context"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/egaotan/solana-swap-offer/utils"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"sync"
	"time"
)

const DefaultInterval = 10 * time.Second

type OfferLister interface {
	ListOpenOffers(ctx context.Context) ([]*swap.Offer, error)
}

type EventKind string

const (
	Opened EventKind = "opened"
	Closed EventKind = "closed"
)

type Event struct {
	Kind  EventKind
	Offer *swap.Offer
}

// StateListen rescans the open offers on a ticker and reports what appeared
// and disappeared since the previous scan. The first scan reports every open
// offer as opened.
type StateListen struct {
	ctx      context.Context
	wg       sync.WaitGroup
	log      *zap.SugaredLogger
	lister   OfferLister
	interval time.Duration
	notify   func(event *Event)
	known    map[solana.PublicKey]*swap.Offer
}

func NewStateListen(ctx context.Context, lister OfferLister, interval time.Duration, notify func(event *Event), log *zap.SugaredLogger) *StateListen {
	if log == nil {
		log = utils.NopLog()
	}
	if interval <= 0 {
		log.Warnf("invalid interval %s, use %s", interval, DefaultInterval)
		interval = DefaultInterval
	}
	return &StateListen{
		ctx:      ctx,
		log:      log,
		lister:   lister,
		interval: interval,
		notify:   notify,
		known:    make(map[solana.PublicKey]*swap.Offer),
	}
}

func (sl *StateListen) Start() {
	sl.wg.Add(1)
	go sl.listen()
}

// Wait returns once the listener has stopped with its context.
func (sl *StateListen) Wait() {
	sl.wg.Wait()
}

func (sl *StateListen) listen() {
	defer sl.wg.Done()
	sl.Scan()
	ticker := time.NewTicker(sl.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sl.Scan()
		case <-sl.ctx.Done():
			return
		}
	}
}

// Scan runs one rescan. A failed scan keeps the previous view.
func (sl *StateListen) Scan() {
	offers, err := sl.lister.ListOpenOffers(sl.ctx)
	if err != nil {
		sl.log.Warnf("list open offers err: %s", err)
		return
	}
	current := make(map[solana.PublicKey]*swap.Offer, len(offers))
	for _, offer := range offers {
		current[offer.Address] = offer
		if _, ok := sl.known[offer.Address]; !ok {
			sl.emit(&Event{Kind: Opened, Offer: offer})
		}
	}
	for address, offer := range sl.known {
		if _, ok := current[address]; !ok {
			sl.emit(&Event{Kind: Closed, Offer: offer})
		}
	}
	sl.known = current
}

func (sl *StateListen) emit(event *Event) {
	sl.log.Infof("offer %s: %s", event.Kind, event.Offer)
	if sl.notify != nil {
		sl.notify(event)
	}
}
