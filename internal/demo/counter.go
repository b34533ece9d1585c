package demo

import (
	"github.com/vango-dev/retain/pkg/component"
	h "github.com/vango-dev/retain/pkg/html"
)

// CounterProps configures a Counter.
type CounterProps struct {
	Label string
	Start int
	Step  int
}

// CounterMsg is a Counter message.
type CounterMsg int

const (
	Increment CounterMsg = iota
	Decrement
	Reset
)

// CounterChanged is emitted after every change.
type CounterChanged struct {
	Value int
}

// Counter is a number with +/- buttons.
type Counter struct {
	count int
}

// NewCounter creates a Counter starting at props.Start.
func NewCounter(p CounterProps) *Counter {
	return &Counter{count: p.Start}
}

// Count returns the current value.
func (c *Counter) Count() int { return c.count }

// Update applies msg and reports the new value.
func (c *Counter) Update(p CounterProps, msg CounterMsg) component.Cmd[CounterMsg, CounterChanged] {
	step := p.Step
	if step == 0 {
		step = 1
	}
	switch msg {
	case Increment:
		c.count += step
	case Decrement:
		c.count -= step
	case Reset:
		c.count = p.Start
	}
	return component.Sub[CounterMsg](CounterChanged{Value: c.count})
}

// Render draws the value between the two buttons.
func (c *Counter) Render(p CounterProps, _ []component.Html) component.Html {
	return h.Div(h.Class("counter"),
		h.If(p.Label != "", h.Span(h.Class("label"), p.Label)),
		h.Button(h.Class("dec"), h.OnClick(Decrement), "-"),
		h.Span(h.Class("count"), h.Textf("%d", c.count)),
		h.Button(h.Class("inc"), h.OnClick(Increment), "+"),
	)
}
