package dispatch

import (
	"strconv"
	"strings"
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
)

// AmountCondition decides whether a cheer amount should trigger a handler.
type AmountCondition func(amount int) bool

func Always() AmountCondition {
	return func(int) bool { return true }
}

func Exactly(n int) AmountCondition {
	return func(amount int) bool { return amount == n }
}

// InRange matches lo <= amount <= hi.
func InRange(lo, hi int) AmountCondition {
	return func(amount int) bool { return amount >= lo && amount <= hi }
}

func GreaterThan(n int) AmountCondition {
	return func(amount int) bool { return amount > n }
}

func GreaterThanOrEqual(n int) AmountCondition {
	return func(amount int) bool { return amount >= n }
}

func LessThan(n int) AmountCondition {
	return func(amount int) bool { return amount < n }
}

func LessThanOrEqual(n int) AmountCondition {
	return func(amount int) bool { return amount <= n }
}

type CheerHandler func(s *session.Session, msg message.ChatMessage, amount int)

type CheerMatcher struct {
	condition AmountCondition
	handler   CheerHandler
}

// OnCheer fires handler for cheers whose amount satisfies condition. A nil
// condition matches every amount.
func OnCheer(condition AmountCondition, handler CheerHandler) *CheerMatcher {
	if condition == nil {
		condition = Always()
	}
	return &CheerMatcher{condition: condition, handler: handler}
}

// CheerAmount reads "cheer<digits>" from the first word of text.
func CheerAmount(text string) (int, bool) {
	head, _, _ := strings.Cut(text, " ")
	digits, ok := strings.CutPrefix(head, "cheer")
	if !ok || digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	amount, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func (m *CheerMatcher) Dispatch(s *session.Session, msg message.ChatMessage) {
	amount, ok := CheerAmount(msg.Text)
	if !ok || !m.condition(amount) {
		return
	}
	m.handler(s, msg, amount)
}
