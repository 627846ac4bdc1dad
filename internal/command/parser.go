// Package command implements the triage command language: a single-line
// grammar of indices, ranges and target aliases followed by action
// characters, e.g. "3o", "1-5d", "?p", "mq".
package command

import "github.com/nhle/ghn/internal/model"

// Pending maps a 1-based entry index to the actions queued for it, in
// typed order with duplicates kept.
type Pending map[int][]model.Action

// Targets maps an alias character to the indices it currently expands to.
type Targets map[rune][]int

// Count returns the total number of queued actions.
func (p Pending) Count() int {
	n := 0
	for _, actions := range p {
		n += len(actions)
	}
	return n
}

// Parse scans input once, left to right, and returns the pending map.
// count bounds valid indices to [1, count]. Malformed characters reset
// the parser state instead of failing the whole line.
func Parse(input string, count int, targets Targets) Pending {
	p := parser{count: count, result: make(Pending)}

	for _, ch := range input {
		switch {
		case ch >= '0' && ch <= '9':
			if p.afterAction {
				p.reset()
			}
			p.digits = append(p.digits, byte(ch))

		case ch == '-':
			if p.afterAction {
				continue
			}
			p.closeRangeStart()

		case ch == ' ' || ch == ',':
			p.closePending()

		case model.IsTarget(ch):
			if p.afterAction {
				p.reset()
			}
			p.closePending()
			for _, idx := range targets[ch] {
				if !p.hasIndex(idx) {
					p.indices = append(p.indices, idx)
				}
			}

		default:
			action, ok := model.ParseAction(ch)
			if !ok {
				p.reset()
				continue
			}
			p.closePending()
			for _, idx := range p.indices {
				p.result[idx] = append(p.result[idx], action)
			}
			p.afterAction = true
		}
	}

	return p.result
}

type parser struct {
	count       int
	digits      []byte
	rangeStart  int // 0 when no range is open
	indices     []int
	afterAction bool
	result      Pending
}

func (p *parser) reset() {
	p.digits = p.digits[:0]
	p.rangeStart = 0
	p.indices = p.indices[:0]
	p.afterAction = false
}

func (p *parser) hasIndex(idx int) bool {
	for _, i := range p.indices {
		if i == idx {
			return true
		}
	}
	return false
}

func (p *parser) push(idx int) {
	if idx >= 1 && idx <= p.count {
		p.indices = append(p.indices, idx)
	}
}

func (p *parser) pushRange(start, end int) {
	if start > end {
		start, end = end, start
	}
	for idx := start; idx <= end; idx++ {
		p.push(idx)
	}
}

// closePending moves the digit buffer, and any open range, into the
// working index set.
func (p *parser) closePending() {
	if len(p.digits) == 0 {
		if p.rangeStart != 0 {
			p.push(p.rangeStart)
			p.rangeStart = 0
		}
		return
	}

	parsed := splitDigits(p.digits, p.count)
	p.digits = p.digits[:0]

	if p.rangeStart != 0 {
		start := p.rangeStart
		p.rangeStart = 0
		if len(parsed) == 0 {
			p.push(start)
			return
		}
		p.pushRange(start, parsed[0])
		parsed = parsed[1:]
	}
	for _, idx := range parsed {
		p.push(idx)
	}
}

// closeRangeStart turns the digit buffer into a range start. Extra
// indices split off the front of the buffer are pushed individually.
func (p *parser) closeRangeStart() {
	if len(p.digits) == 0 {
		return
	}

	parsed := splitDigits(p.digits, p.count)
	p.digits = p.digits[:0]

	if len(parsed) == 0 {
		p.rangeStart = 0
		return
	}
	for _, idx := range parsed[:len(parsed)-1] {
		p.push(idx)
	}
	p.rangeStart = parsed[len(parsed)-1]
}

// splitDigits decomposes a digit run into the longest in-range prefixes,
// left to right. It stops at the first position with no valid prefix.
func splitDigits(digits []byte, count int) []int {
	var out []int
	for len(digits) > 0 {
		value, n := longestValidPrefix(digits, count)
		if n == 0 {
			break
		}
		out = append(out, value)
		digits = digits[n:]
	}
	return out
}

func longestValidPrefix(digits []byte, count int) (value, length int) {
	current := 0
	for i, d := range digits {
		current = current*10 + int(d-'0')
		if current >= 1 && current <= count {
			value, length = current, i+1
		}
		if current > count {
			break
		}
	}
	return value, length
}

// IsCommandRune reports whether r belongs to the command alphabet. The
// input bar drops everything else.
func IsCommandRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r == '-', r == ' ', r == ',':
		return true
	case model.IsTarget(r):
		return true
	}
	_, ok := model.ParseAction(r)
	return ok
}
