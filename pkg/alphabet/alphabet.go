/*
Package alphabet maps the supported characters to compact integer codes.

The alphabet covers uppercase Greek letters, uppercase Latin letters and
decimal digits. Input is case-folded first, so accented and lowercase Greek
vowels collapse to their plain capitals and final sigma collapses to sigma.

Codes are laid out in disjoint ranges:

	1..17   Α .. Ρ
	18..24  Σ .. Ω
	25..50  A .. Z
	51..60  0 .. 9

Code 0 is the Sentinel and is never produced by Encode.
*/
package alphabet

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Code is the integer form of a single folded character.
type Code uint8

// Word is an encoded word.
type Word []Code

// Sentinel marks "no character". The trie root carries it as its label.
const Sentinel Code = 0

const (
	greekAlpha = 'Α' // U+0391
	greekRho   = 'Ρ' // U+03A1
	greekSigma = 'Σ' // U+03A3
	greekOmega = 'Ω' // U+03A9

	greekLowEnd  Code = 17
	greekHighEnd Code = 24
	latinEnd     Code = 50
	digitEnd     Code = 60

	// Size is the number of codes in use, sentinel excluded.
	Size = int(digitEnd)
)

var (
	// ErrInvalidCharacter is returned when a rune has no code.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrInvalidNumber is returned when a code maps to no rune.
	ErrInvalidNumber = errors.New("invalid number")
)

// foldTable holds the Greek forms that unicode.ToUpper keeps accented.
var foldTable = map[rune]rune{
	'ά': 'Α', 'Ά': 'Α',
	'έ': 'Ε', 'Έ': 'Ε',
	'ί': 'Ι', 'ϊ': 'Ι', 'ΐ': 'Ι', 'Ί': 'Ι', 'Ϊ': 'Ι',
	'ή': 'Η', 'Ή': 'Η',
	'ό': 'Ο', 'Ό': 'Ο',
	'ώ': 'Ω', 'Ώ': 'Ω',
	'ύ': 'Υ', 'ϋ': 'Υ', 'ΰ': 'Υ', 'Ύ': 'Υ', 'Ϋ': 'Υ',
}

// Fold maps r to its canonical representative.
func Fold(r rune) rune {
	if folded, ok := foldTable[r]; ok {
		return folded
	}
	return unicode.ToUpper(r)
}

// FoldString applies Fold to every rune of s.
func FoldString(s string) string {
	return strings.Map(Fold, s)
}

// Encode returns the code of an already folded rune.
func Encode(r rune) (Code, error) {
	switch {
	case r >= greekAlpha && r <= greekRho:
		return Code(r-greekAlpha) + 1, nil
	case r >= greekSigma && r <= greekOmega:
		return Code(r-greekSigma) + greekLowEnd + 1, nil
	case r >= 'A' && r <= 'Z':
		return Code(r-'A') + greekHighEnd + 1, nil
	case r >= '0' && r <= '9':
		return Code(r-'0') + latinEnd + 1, nil
	}
	return Sentinel, fmt.Errorf("%w: %q", ErrInvalidCharacter, r)
}

// Decode returns the rune a code stands for.
func Decode(c Code) (rune, error) {
	switch {
	case c == Sentinel || c > digitEnd:
		return 0, fmt.Errorf("%w: %d", ErrInvalidNumber, c)
	case c <= greekLowEnd:
		return greekAlpha + rune(c-1), nil
	case c <= greekHighEnd:
		return greekSigma + rune(c-greekLowEnd-1), nil
	case c <= latinEnd:
		return 'A' + rune(c-greekHighEnd-1), nil
	default:
		return '0' + rune(c-latinEnd-1), nil
	}
}

// Valid reports whether r can be encoded once folded.
func Valid(r rune) bool {
	_, err := Encode(Fold(r))
	return err == nil
}

// EncodeWord folds and encodes s. It stops at the first unsupported rune.
func EncodeWord(s string) (Word, error) {
	word := make(Word, 0, len(s))
	for _, r := range s {
		c, err := Encode(Fold(r))
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", s, err)
		}
		word = append(word, c)
	}
	return word, nil
}

// DecodeWord turns codes back into a string. A leading Sentinel is skipped.
func DecodeWord(w Word) (string, error) {
	if len(w) > 0 && w[0] == Sentinel {
		w = w[1:]
	}
	var sb strings.Builder
	sb.Grow(len(w) * 2)
	for _, c := range w {
		r, err := Decode(c)
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// Clone returns a copy of w that shares no memory with it.
func (w Word) Clone() Word {
	if w == nil {
		return nil
	}
	out := make(Word, len(w))
	copy(out, w)
	return out
}

// String renders w for debugging; undecodable codes show as their number.
func (w Word) String() string {
	var sb strings.Builder
	for _, c := range w {
		if r, err := Decode(c); err == nil {
			sb.WriteRune(r)
		} else {
			fmt.Fprintf(&sb, "<%d>", c)
		}
	}
	return sb.String()
}
