package spinner

import "math"

// Phase is the gesture state of a Spinner.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Settling
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "idle"
	}
}

// Option configures a Spinner.
type Option func(*Spinner)

// WithReplicas sets the logical repeat count. Values below three or even
// counts are raised to the next odd count of at least three.
func WithReplicas(n int) Option {
	return func(s *Spinner) { s.replicas = normalizeReplicas(n) }
}

// WithItemHeight sets the size of one slot in offset units.
func WithItemHeight(h float64) Option {
	return func(s *Spinner) {
		if h > 0 {
			s.itemHeight = h
		}
	}
}

// WithValue sets the initial value.
func WithValue(v int) Option {
	return func(s *Spinner) { s.value = v }
}

// WithOnChange registers a callback for user-driven value changes.
func WithOnChange(fn func(int)) Option {
	return func(s *Spinner) { s.onChange = fn }
}

// WithOnReachedMax registers the forward rollover callback.
func WithOnReachedMax(fn func()) Option {
	return func(s *Spinner) { s.onReachedMax = fn }
}

// WithOnReachedMin registers the backward rollover callback.
func WithOnReachedMin(fn func()) Option {
	return func(s *Spinner) { s.onReachedMin = fn }
}

// Spinner selects one value of a bounded range through an endless wheel.
// It is driven from a single goroutine.
type Spinner struct {
	label      string
	bounds     Bounds
	replicas   int
	itemHeight float64

	value  int
	offset float64
	phase  Phase

	onChange     func(int)
	onReachedMax func()
	onReachedMin func()
}

// New builds a spinner centred on its initial value.
func New(label string, bounds Bounds, opts ...Option) *Spinner {
	s := &Spinner{
		label:      label,
		bounds:     bounds,
		replicas:   DefaultReplicas,
		itemHeight: 1,
		value:      bounds.Min,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.value = bounds.Clamp(s.value)
	s.offset = s.centerOffset(s.value)
	return s
}

// Label returns the caption shown above the wheel.
func (s *Spinner) Label() string { return s.label }

// Bounds returns the value range.
func (s *Spinner) Bounds() Bounds { return s.bounds }

// Value returns the selected value.
func (s *Spinner) Value() int { return s.value }

// Offset returns the raw scroll offset.
func (s *Spinner) Offset() float64 { return s.offset }

// ItemHeight returns the slot size.
func (s *Spinner) ItemHeight() float64 { return s.itemHeight }

// Phase returns the gesture state.
func (s *Spinner) Phase() Phase { return s.phase }

// Interacting reports whether a gesture is in progress.
func (s *Spinner) Interacting() bool { return s.phase != Idle }

// BeginDrag enters the Dragging phase. It is refused while a settle is
// still running.
func (s *Spinner) BeginDrag() bool {
	if s.phase == Settling {
		return false
	}
	s.phase = Dragging
	return true
}

// DragBy moves the raw offset. A drag is started implicitly when idle.
func (s *Spinner) DragBy(delta float64) {
	if s.phase == Idle && !s.BeginDrag() {
		return
	}
	if s.phase != Dragging {
		return
	}
	s.offset += delta
}

// Settle finalises the gesture: the offset snaps to the nearest slot, the
// value is updated and the wheel jumps to the middle repeat. Boundary and
// change callbacks fire before Settle returns.
func (s *Spinner) Settle() Result {
	if s.phase == Settling {
		return Result{Value: s.value, Index: s.centerIndex(s.value), Offset: s.offset}
	}
	prev := s.value
	res := Reconcile(s.offset, prev, s.bounds, s.itemHeight, s.replicas)
	s.phase = Settling
	s.value = res.Value
	s.offset = res.Offset

	switch res.Event {
	case EventReachedMax:
		if s.onReachedMax != nil {
			s.onReachedMax()
		}
	case EventReachedMin:
		if s.onReachedMin != nil {
			s.onReachedMin()
		}
	}
	if res.Value != prev && s.onChange != nil {
		s.onChange(res.Value)
	}
	s.phase = Idle
	return res
}

// Step drags by n slots and settles, as one wheel notch or key press.
func (s *Spinner) Step(n int) Result {
	s.DragBy(float64(n) * s.itemHeight)
	return s.Settle()
}

// SetValue applies a value imposed by the owner. The value is clamped and
// the wheel re-centred; no callbacks fire.
func (s *Spinner) SetValue(v int) {
	s.value = s.bounds.Clamp(v)
	s.offset = s.centerOffset(s.value)
	s.phase = Idle
}

// Item is one rendered slot of the wheel.
type Item struct {
	Value    int
	Index    int
	Distance float64
	Opacity  float64
	Scale    float64
}

const (
	minOpacity = 0.5
	minScale   = 0.8
)

// Window returns the 2*radius+1 slots nearest to the current offset,
// top to bottom. Only these slots are computed.
func (s *Spinner) Window(radius int) []Item {
	if radius < 0 {
		radius = 0
	}
	pos := s.offset / s.itemHeight
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		pos = float64(s.centerIndex(s.value))
	}
	total := float64(s.bounds.Len() * s.replicas)
	if pos = math.Mod(pos, total); pos < 0 {
		pos += total
	}
	center := int(math.Round(pos))
	items := make([]Item, 0, 2*radius+1)
	for i := center - radius; i <= center+radius; i++ {
		dist := float64(i) - pos
		items = append(items, Item{
			Value:    s.bounds.Wrap(s.bounds.Min + i),
			Index:    i,
			Distance: dist,
			Opacity:  Interpolate(dist, minOpacity),
			Scale:    Interpolate(dist, minScale),
		})
	}
	return items
}

// Interpolate maps a slot distance to 1 at the centre falling linearly to
// floor one slot away, clamped beyond.
func Interpolate(distance, floor float64) float64 {
	d := math.Abs(distance)
	if d >= 1 {
		return floor
	}
	return 1 - (1-floor)*d
}

func (s *Spinner) centerIndex(v int) int {
	return middleSlot(v, s.bounds, s.replicas)
}

func (s *Spinner) centerOffset(v int) float64 {
	return float64(s.centerIndex(v)) * s.itemHeight
}
