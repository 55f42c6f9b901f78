package core

import (
	"log/slog"
	"strings"
	"unicode"
)

// unexported constants.
const (
	alphabetSize  = 26
	outputPrefix  = "output"
	nameSeparator = "_"
	secondSegment = 1
	thirdSegment  = 2
	fourthSegment = 3
)

// shortFlagAllocator hands out single-letter aliases. One allocator serves one build;
// h and v start claimed for the help and version flags.
type shortFlagAllocator struct {
	claimed map[rune]bool
	logger  *slog.Logger
}

func newShortFlagAllocator(logger *slog.Logger) *shortFlagAllocator {
	return &shortFlagAllocator{claimed: map[rune]bool{'h': true, 'v': true}, logger: logger}
}

// allocate returns the first unclaimed candidate for name and claims it, or 0 when none is free.
func (a *shortFlagAllocator) allocate(name string) rune {
	if len(a.claimed) >= alphabetSize {
		a.logger.Debug("short letters exhausted", slog.String("argument", name))
		return 0
	}

	for _, letter := range shortLetterCandidates(name) {
		if letter < 'a' || letter > 'z' || a.claimed[letter] {
			continue
		}

		a.claimed[letter] = true
		a.logger.Debug("short letter assigned", slog.String("argument", name), slog.String("letter", string(letter)))

		return letter
	}

	a.logger.Debug("no short letter available", slog.String("argument", name))

	return 0
}

// allocateShortLetters assigns aliases to args in declaration order.
func allocateShortLetters(args []Argument, logger *slog.Logger) {
	allocator := newShortFlagAllocator(logger)

	for i := range args {
		args[i].ShortLetter = allocator.allocate(args[i].Name)
	}
}

// shortLetterCandidates lists the letters to try for name, in preference order.
// Empty segments, as in "a__b", contribute nothing.
func shortLetterCandidates(name string) []rune {
	segments := strings.Split(name, nameSeparator)
	candidates := make([]rune, 0, len(name)+2)

	firstLetter := func(s string) {
		for _, r := range s {
			candidates = append(candidates, unicode.ToLower(r))
			return
		}
	}

	if segments[0] == outputPrefix {
		candidates = append(candidates, 'o')
	}

	if len(segments) > secondSegment {
		firstLetter(segments[secondSegment])
	}

	firstLetter(name)

	if len(segments) > thirdSegment {
		firstLetter(segments[thirdSegment])
	}

	if len(segments) > fourthSegment {
		firstLetter(segments[fourthSegment])
	} else {
		for _, r := range name {
			if string(r) != nameSeparator {
				candidates = append(candidates, unicode.ToLower(r))
			}
		}
	}

	return candidates
}
