package resolver

import (
	"time"

	"github.com/borud/broker"
)

const publishTimeout = 1 * time.Second

// Topic is the broker topic Publisher publishes progress events on,
// mirroring the teacher's pkg/vcl.Loader / pkg/cache "/process"
// convention.
const Topic = "/resolve"

// EventUnitResolved is published each time Resolve places a unit in
// the build order.
type EventUnitResolved struct {
	IP   string
	Name string
}

// EventCycleDetected is published when Resolve aborts on a dependency
// cycle.
type EventCycleDetected struct {
	Names []string
}

// EventGraphReady is published once Resolve finishes successfully.
type EventGraphReady struct {
	UnitCount int
}

// Publisher optionally reports resolver progress to a broker topic so
// an out-of-scope caller orchestrating a multi-IP build (spec §1) can
// subscribe instead of polling. A nil *Publisher is a valid no-op.
type Publisher struct {
	broker *broker.Broker
}

// NewPublisher wraps b for resolver progress events. Passing a nil b
// is fine — all publish calls become no-ops.
func NewPublisher(b *broker.Broker) *Publisher {
	return &Publisher{broker: b}
}

func (p *Publisher) publishUnitResolved(n *Node) {
	if p == nil || p.broker == nil {
		return
	}
	_ = p.broker.Publish(Topic, EventUnitResolved{IP: n.IP.String(), Name: n.Unit.Name.String()}, publishTimeout)
}

func (p *Publisher) publishCycleDetected(err *CycleError) {
	if p == nil || p.broker == nil {
		return
	}
	_ = p.broker.Publish(Topic, EventCycleDetected{Names: err.Names}, publishTimeout)
}

func (p *Publisher) publishGraphReady(unitCount int) {
	if p == nil || p.broker == nil {
		return
	}
	_ = p.broker.Publish(Topic, EventGraphReady{UnitCount: unitCount}, publishTimeout)
}
