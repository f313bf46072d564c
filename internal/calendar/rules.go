package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownService = errors.New("unknown service")
	ErrInvalidRules   = errors.New("invalid calendar rules")
)

const DefaultStepMinutes = 5

type Service struct {
	Name     string `json:"name"`
	Duration int    `json:"duration_minutes"`
	Price    int64  `json:"price"`
}

// Style is a premium variant of a base service: it takes the base
// service's duration and charges its own price.
type Style struct {
	Name        string `json:"name"`
	BaseService string `json:"base_service"`
	Price       int64  `json:"price"`
}

type Options struct {
	Open          TimeOfDay
	Close         TimeOfDay
	Breaks        []Interval
	Services      []Service
	Styles        []Style
	BufferMinutes int
	StepMinutes   int
}

// Rules holds the working-day configuration. It is immutable once built
// and safe for concurrent use.
type Rules struct {
	hours    Interval
	breaks   []Interval
	services map[string]Service
	styles   map[string]Style
	order    []string
	styleSeq []string
	buffer   int
	step     int
}

// Quote is a service reference resolved against the rules.
type Quote struct {
	Ref         ServiceRef `json:"-"`
	Service     string     `json:"service"`
	BaseService string     `json:"base_service"`
	Duration    int        `json:"duration_minutes"`
	Price       int64      `json:"price"`
}

func NewRules(opts Options) (*Rules, error) {
	hours, err := NewInterval(opts.Open, opts.Close)
	if err != nil {
		return nil, fmt.Errorf("%w: business hours: %v", ErrInvalidRules, err)
	}
	if !opts.Open.Valid() || opts.Close.Minutes() > minutesPerDay {
		return nil, fmt.Errorf("%w: business hours %s outside the day", ErrInvalidRules, hours)
	}

	step := opts.StepMinutes
	if step == 0 {
		step = DefaultStepMinutes
	}
	if step < 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidRules, step)
	}
	if opts.BufferMinutes < 0 {
		return nil, fmt.Errorf("%w: buffer must not be negative, got %d", ErrInvalidRules, opts.BufferMinutes)
	}

	breaks := make([]Interval, len(opts.Breaks))
	copy(breaks, opts.Breaks)
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].Start < breaks[j].Start })
	for i, b := range breaks {
		if !b.Start.Before(b.End) {
			return nil, fmt.Errorf("%w: empty break %s", ErrInvalidRules, b)
		}
		if !hours.Contains(b) {
			return nil, fmt.Errorf("%w: break %s outside business hours %s", ErrInvalidRules, b, hours)
		}
		if i > 0 && breaks[i-1].Overlaps(b) {
			return nil, fmt.Errorf("%w: breaks %s and %s overlap", ErrInvalidRules, breaks[i-1], b)
		}
	}

	r := &Rules{
		hours:    hours,
		breaks:   breaks,
		services: make(map[string]Service, len(opts.Services)),
		styles:   make(map[string]Style, len(opts.Styles)),
		buffer:   opts.BufferMinutes,
		step:     step,
	}

	for _, s := range opts.Services {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return nil, fmt.Errorf("%w: service without a name", ErrInvalidRules)
		}
		if _, dup := r.services[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate service %q", ErrInvalidRules, s.Name)
		}
		if s.Duration <= 0 {
			return nil, fmt.Errorf("%w: service %q must have a positive duration", ErrInvalidRules, s.Name)
		}
		if s.Price < 0 {
			return nil, fmt.Errorf("%w: service %q has a negative price", ErrInvalidRules, s.Name)
		}
		r.services[s.Name] = s
		r.order = append(r.order, s.Name)
	}

	for _, st := range opts.Styles {
		st.Name = strings.TrimSpace(st.Name)
		if st.Name == "" {
			return nil, fmt.Errorf("%w: style without a name", ErrInvalidRules)
		}
		if _, dup := r.styles[st.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate style %q", ErrInvalidRules, st.Name)
		}
		if _, ok := r.services[st.BaseService]; !ok {
			return nil, fmt.Errorf("%w: style %q refers to unknown service %q", ErrInvalidRules, st.Name, st.BaseService)
		}
		if st.Price <= 0 {
			return nil, fmt.Errorf("%w: style %q must have a positive price", ErrInvalidRules, st.Name)
		}
		r.styles[st.Name] = st
		r.styleSeq = append(r.styleSeq, st.Name)
	}

	return r, nil
}

func (r *Rules) Open() TimeOfDay  { return r.hours.Start }
func (r *Rules) Close() TimeOfDay { return r.hours.End }
func (r *Rules) Hours() Interval  { return r.hours }
func (r *Rules) Buffer() int      { return r.buffer }
func (r *Rules) Step() int        { return r.step }

func (r *Rules) Breaks() []Interval {
	out := make([]Interval, len(r.breaks))
	copy(out, r.breaks)
	return out
}

// Services returns the catalog in configuration order.
func (r *Rules) Services() []Service {
	out := make([]Service, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.services[name])
	}
	return out
}

func (r *Rules) Styles() []Style {
	out := make([]Style, 0, len(r.styleSeq))
	for _, name := range r.styleSeq {
		out = append(out, r.styles[name])
	}
	return out
}

func (r *Rules) DurationFor(service string) (int, error) {
	s, ok := r.services[service]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
	return s.Duration, nil
}

func (r *Rules) PriceFor(service string) (int64, error) {
	s, ok := r.services[service]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
	return s.Price, nil
}

// Resolve turns a plain service or a special style into a duration and a
// price. A style takes its base service's duration and its own price.
func (r *Rules) Resolve(ref ServiceRef) (Quote, error) {
	switch ref.Kind() {
	case RefService:
		s, ok := r.services[ref.Name()]
		if !ok {
			return Quote{}, fmt.Errorf("%w: %q", ErrUnknownService, ref.Name())
		}
		return Quote{Ref: ref, Service: s.Name, BaseService: s.Name, Duration: s.Duration, Price: s.Price}, nil
	case RefStyle:
		st, ok := r.styles[ref.Name()]
		if !ok {
			return Quote{}, fmt.Errorf("%w: style %q", ErrUnknownService, ref.Name())
		}
		base, ok := r.services[st.BaseService]
		if !ok {
			return Quote{}, fmt.Errorf("%w: base service %q of style %q", ErrUnknownService, st.BaseService, st.Name)
		}
		return Quote{Ref: ref, Service: st.Name, BaseService: base.Name, Duration: base.Duration, Price: st.Price}, nil
	default:
		return Quote{}, fmt.Errorf("%w: empty service reference", ErrUnknownService)
	}
}

func (r *Rules) IsWithinBusinessHours(iv Interval) bool {
	return r.hours.Contains(iv)
}

func (r *Rules) IntersectsBreak(iv Interval) bool {
	for _, b := range r.breaks {
		if b.Overlaps(iv) {
			return true
		}
	}
	return false
}

// Occupied extends an appointment's interval by the buffer that must stay
// free after it.
func (r *Rules) Occupied(iv Interval) Interval {
	return Interval{Start: iv.Start, End: iv.End.Add(r.buffer)}
}

// LatestStart is the last start time that still ends by closing time.
func (r *Rules) LatestStart(duration int) TimeOfDay {
	return r.hours.End.Add(-duration)
}
