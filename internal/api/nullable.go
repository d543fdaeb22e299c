package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/service"
)

// Nullable tells apart a missing JSON key, an explicit null and a value.
// encoding/json only calls UnmarshalJSON for keys that are present, so the
// zero Nullable means "leave unchanged".
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

// required converts a key whose column cannot be cleared.
func required[T any](name string, n Nullable[T]) (service.Field[T], error) {
	if !n.Set {
		return service.Field[T]{}, nil
	}
	if n.Null {
		return service.Field[T]{}, domain.Invalidf("%s cannot be null", name)
	}
	return service.SetTo(n.Value), nil
}

// optional converts a key for a nullable column; null clears it.
func optional[T any](n Nullable[T]) service.Field[*T] {
	if !n.Set {
		return service.Field[*T]{}
	}
	if n.Null {
		return service.SetTo[*T](nil)
	}
	v := n.Value
	return service.SetTo(&v)
}

// Date is a calendar day on the wire as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(domain.FormatDate(d.Time))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func dateOf(t time.Time) Date { return Date{Time: t} }

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := Date{Time: *t}
	return &d
}

func timeOf(d *Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

func timePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func dateField(name string, n Nullable[Date]) (service.Field[time.Time], error) {
	f, err := required(name, n)
	if err != nil || !f.Set {
		return service.Field[time.Time]{}, err
	}
	return service.SetTo(f.Value.Time), nil
}

func optionalDate(n Nullable[Date]) service.Field[*time.Time] {
	switch {
	case !n.Set:
		return service.Field[*time.Time]{}
	case n.Null:
		return service.SetTo[*time.Time](nil)
	}
	t := n.Value.Time
	return service.SetTo(&t)
}
