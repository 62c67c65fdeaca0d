// Package match provides matchers for asserting against mimic mocks and
// their recorded calls. This package is designed to be dot-imported
// alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/mimic/match"
//	)
//
//	g.Expect(mock).To(HaveCallCount(2))
//	g.Expect(mock).To(BeCalledWith(1, BeAny))
package match

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/toejough/mimic"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing in both directions:
// gomega matchers satisfy Matcher, and every matcher this package returns
// can be handed straight to gomega's Expect(...).To(...).
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
	NegatedFailureMessage(actual any) string
}

// CallLog is the duck interface mock matchers assert against. All mimic
// function mocks satisfy it.
type CallLog interface {
	Calls() []any
	CallCount() int
}

// BeAny is a matcher that matches any value.
// Useful when you don't care about a particular argument.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// BeCalled returns a matcher asserting the mock was invoked at least once.
func BeCalled() Matcher {
	return &calledMatcher{}
}

// BeCalledWith returns a matcher asserting some recorded call's args-record
// matches the expected values element-wise. Elements may be literal values
// (compared with reflect.DeepEqual) or nested matchers. Named args-records
// are compared by their values in declaration order; single-extraction
// records compare against a single expected value.
func BeCalledWith(expected ...any) Matcher {
	return &calledWithMatcher{expected: expected}
}

// HaveCallCount returns a matcher asserting the mock was invoked exactly n
// times.
func HaveCallCount(n int) Matcher {
	return &callCountMatcher{expected: n}
}

// valueMatcher is the minimal duck type MatchValue needs from a nested
// matcher; any gomega matcher or Matcher satisfies it.
type valueMatcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchValue checks if actual matches expected.
// If expected implements the matcher duck type, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	// Check if expected is a matcher
	if matcher, ok := expected.(valueMatcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	// Fall back to reflect.DeepEqual for non-matchers
	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %v, got %v", expected, actual)
}

// Satisfy returns a matcher that uses a predicate function to check for a
// match. The predicate should return nil if the value matches, or an error
// describing the mismatch if it does not.
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

// NegatedFailureMessage describes the BeAny mismatch for negated asserts.
func (anyMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %v not to match BeAny, but BeAny matches everything", actual)
}

type callCountMatcher struct {
	expected int
	actual   int
}

func (m *callCountMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %v to have %d calls, got %d", actual, m.expected, m.actual)
}

func (m *callCountMatcher) Match(actual any) (bool, error) {
	log, ok := actual.(CallLog)
	if !ok {
		return false, fmt.Errorf("%w: expected a mock with a call log, got %T", errTypeMismatch, actual)
	}

	m.actual = log.CallCount()

	return m.actual == m.expected, nil
}

func (m *callCountMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %v not to have %d calls", actual, m.expected)
}

type calledMatcher struct{}

func (m *calledMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %v to have been called", actual)
}

func (m *calledMatcher) Match(actual any) (bool, error) {
	log, ok := actual.(CallLog)
	if !ok {
		return false, fmt.Errorf("%w: expected a mock with a call log, got %T", errTypeMismatch, actual)
	}

	return log.CallCount() > 0, nil
}

func (m *calledMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %v not to have been called", actual)
}

type calledWithMatcher struct {
	expected []any
	lastMsg  string
}

func (m *calledWithMatcher) FailureMessage(any) string {
	if m.lastMsg != "" {
		return fmt.Sprintf("no recorded call matched %#v: %s", m.expected, m.lastMsg)
	}

	return fmt.Sprintf("no recorded call matched %#v", m.expected)
}

func (m *calledWithMatcher) Match(actual any) (bool, error) {
	log, ok := actual.(CallLog)
	if !ok {
		return false, fmt.Errorf("%w: expected a mock with a call log, got %T", errTypeMismatch, actual)
	}

	for _, call := range log.Calls() {
		if msg, matched := m.matchCall(call); matched {
			return true, nil
		} else if msg != "" {
			m.lastMsg = msg
		}
	}

	return false, nil
}

func (m *calledWithMatcher) NegatedFailureMessage(any) string {
	return fmt.Sprintf("expected no recorded call to match %#v, but one did", m.expected)
}

// matchCall compares one args-record against the expected values.
func (m *calledWithMatcher) matchCall(call any) (string, bool) {
	values := argValues(call)
	if len(values) != len(m.expected) {
		return fmt.Sprintf("expected %d args, got %d", len(m.expected), len(values)), false
	}

	for i, expected := range m.expected {
		if ok, msg := MatchValue(values[i], expected); !ok {
			return fmt.Sprintf("arg %d: %s", i, msg), false
		}
	}

	return "", true
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

func (m *satisfyMatcher[T]) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %v not to satisfy the predicate, but it did", actual)
}

// argValues flattens an args-record into positional values: named records
// yield their values in declaration order, raw tuples yield themselves, and
// single extractions yield one value.
func argValues(call any) []any {
	switch rec := call.(type) {
	case *mimic.Record:
		values := make([]any, 0, rec.Len())
		for _, key := range rec.Keys() {
			values = append(values, rec.Get(key))
		}

		return values
	case []any:
		return rec
	default:
		return []any{call}
	}
}
