package domain

import "strings"

// Phone is a phone number reduced to its digits, with a leading "+" kept
// when the input had one.
type Phone string

// NewPhone normalizes raw input. Formatting characters are dropped.
func NewPhone(raw string) Phone {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if normalized == "+" {
		return ""
	}
	return Phone(normalized)
}

func (p Phone) String() string { return string(p) }

// AdditionalPhones is the ordered set of secondary phone numbers.
type AdditionalPhones []Phone

// NewAdditionalPhones normalizes each entry, skipping blanks and duplicates.
func NewAdditionalPhones(raw []string) AdditionalPhones {
	phones := make(AdditionalPhones, 0, len(raw))
	seen := make(map[Phone]struct{}, len(raw))
	for _, value := range raw {
		phone := NewPhone(value)
		if phone == "" {
			continue
		}
		if _, ok := seen[phone]; ok {
			continue
		}
		seen[phone] = struct{}{}
		phones = append(phones, phone)
	}
	return phones
}

// Strings returns the phones as plain strings.
func (a AdditionalPhones) Strings() []string {
	out := make([]string, len(a))
	for i, p := range a {
		out[i] = string(p)
	}
	return out
}
