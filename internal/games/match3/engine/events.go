package engine

// Event is a state-change notification emitted while a move resolves.
// Renderers and score keepers consume these; the engine never waits on them.
type Event interface {
	engineEvent()
}

// SwapPerformedEvent is emitted when a valid swap is applied tentatively.
type SwapPerformedEvent struct {
	Swap Swap
}

func (SwapPerformedEvent) engineEvent() {}

// SwapRevertedEvent is emitted when a swap produced no match and was undone.
type SwapRevertedEvent struct {
	Swap Swap
}

func (SwapRevertedEvent) engineEvent() {}

// InvalidMoveEvent reports a rejected move.
type InvalidMoveEvent struct {
	Swap   Swap
	Reason Reason
	Err    *Error
}

func (InvalidMoveEvent) engineEvent() {}

// MatchFormedEvent is emitted once per scoring group, before its tiles clear.
type MatchFormedEvent struct {
	Group      Match
	ScoreDelta int
	Pass       int
	Multiplier int
}

func (MatchFormedEvent) engineEvent() {}

// TileRemovedEvent is emitted for every cleared position.
type TileRemovedEvent struct {
	Pos  Coord
	Type TileType
	Pass int
}

func (TileRemovedEvent) engineEvent() {}

// Fall describes one tile moving down a column during gravity.
type Fall struct {
	Tile TileID
	From Coord
	To   Coord
}

// ColumnCompactedEvent is emitted for each column whose tiles moved.
type ColumnCompactedEvent struct {
	Column int
	Falls  []Fall
	Pass   int
}

func (ColumnCompactedEvent) engineEvent() {}

// TileSpawnedEvent is emitted when an Empty slot receives a new type.
type TileSpawnedEvent struct {
	Pos  Coord
	Type TileType
	Pass int
}

func (TileSpawnedEvent) engineEvent() {}

// BoardStableEvent closes a resolution.
type BoardStableEvent struct {
	CascadeDepth    int
	TotalScoreDelta int
	MovesConsumed   int
	Truncated       bool
}

func (BoardStableEvent) engineEvent() {}

// BoardShuffledEvent is emitted after a stuck board was reshuffled.
type BoardShuffledEvent struct {
	Attempts int
}

func (BoardShuffledEvent) engineEvent() {}

// ErrorReportedEvent carries every error the engine reports.
type ErrorReportedEvent struct {
	Err *Error
}

func (ErrorReportedEvent) engineEvent() {}

// Publisher receives engine notifications.
type Publisher interface {
	Publish(Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(Event)

// Publish calls f(ev).
func (f PublisherFunc) Publish(ev Event) {
	f(ev)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = PublisherFunc(func(Event) {})

// Bus fans events out synchronously to its subscribers in subscription
// order. It is meant to be owned by one game session and is not safe for
// concurrent use.
type Bus struct {
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to all current subscribers.
func (b *Bus) Publish(ev Event) {
	subs := b.subs
	for _, s := range subs {
		s.fn(ev)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	return len(b.subs)
}

// Recorder collects events in order.
type Recorder struct {
	Events []Event
}

// Publish appends ev.
func (r *Recorder) Publish(ev Event) {
	r.Events = append(r.Events, ev)
}

// Drain returns the collected events and resets the recorder.
func (r *Recorder) Drain() []Event {
	evs := r.Events
	r.Events = nil
	return evs
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
