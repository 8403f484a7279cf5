// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/pflag"
)

// maxSuggestionDistance catches common typos (transpositions, dropped
// characters, extra characters) without suggesting unrelated names.
const maxSuggestionDistance = 3

// suggestCommand returns the name of the closest matching subcommand to
// the unknown input, or "" if nothing is close enough.
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, 0, len(commands))
	for _, command := range commands {
		names = append(names, command.Name)
	}
	return closest(unknown, names)
}

// suggestFlag looks at the args for the first unrecognized flag and returns
// the closest defined flag name, formatted with the appropriate prefix
// (-- or -). Returns "" if no good suggestion is found.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
	})

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}

		if isDefinedFlag(flagSet, arg, name) {
			continue
		}

		if best := closest(name, defined); best != "" {
			return "--" + best
		}

		// Only check the first unrecognized flag.
		break
	}

	return ""
}

func isDefinedFlag(flagSet *pflag.FlagSet, arg, name string) bool {
	if strings.HasPrefix(arg, "--") {
		return flagSet.Lookup(name) != nil
	}
	// Shorthands may be combined ("-vo dir"); only the first letter
	// must be known for the flag to count as recognized.
	return name != "" && flagSet.ShorthandLookup(name[:1]) != nil
}

// closest returns the candidate with the smallest edit distance to
// input, or "" if none is within maxSuggestionDistance. Ties go to the
// earliest candidate.
func closest(input string, candidates []string) string {
	bestName := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range candidates {
		distance := fuzzy.LevenshteinDistance(input, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}
