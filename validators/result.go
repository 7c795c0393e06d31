// Package validators holds the restaurant's request rules. Rules are pure
// functions over an explicit context value and compose in order with Chain.
package validators

import (
	"net/http"

	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Result is the outcome of a rule: a pass, or a failure carrying the HTTP
// status and one or more messages.
type Result struct {
	Status   int
	Messages []string
}

func Pass() Result {
	return Result{}
}

func Fail(status int, messages ...string) Result {
	return Result{Status: status, Messages: messages}
}

func Invalid(messages ...string) Result {
	return Fail(http.StatusBadRequest, messages...)
}

func (r Result) OK() bool {
	return len(r.Messages) == 0
}

// Err converts a failed Result into a *utils.RequestError, nil on pass.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &utils.RequestError{Status: r.Status, Messages: r.Messages}
}

type Rule[T any] func(T) Result

// Chain runs rules in order and stops at the first failure.
func Chain[T any](rules ...Rule[T]) Rule[T] {
	return func(in T) Result {
		for _, rule := range rules {
			if res := rule(in); !res.OK() {
				return res
			}
		}
		return Pass()
	}
}

// Number is a numeric payload field. Present is false when the field is
// absent, null or an empty string; Numeric is false when it was sent as
// anything but a whole JSON number.
type Number struct {
	Value   int
	Present bool
	Numeric bool
}

// Int is a convenience for building a well-formed Number.
func Int(v int) Number {
	return Number{Value: v, Present: true, Numeric: true}
}
