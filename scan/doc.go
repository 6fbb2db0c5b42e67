// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scan simulates the ballot scanner.

# Outcomes

Generate draws one result from a Source:

	res := scan.Generate(models.ForceNone, src, time.Now())

Without an override the distribution is 70% success, 20% error and
10% invalid. Errors pick one of multiple_selections, damaged or
unreadable uniformly; only multiple_selections cannot be retried.
Invalid ballots always carry InvalidReason and canAccept=false.

A forced outcome (ForceSuccess, ForceError) skips the weighted draw.

# Randomness

Source is satisfied by *rand.Rand from math/rand/v2. Use NewSource(seed)
for reproducible runs, or a fixed stub in tests.

# Ballot Numbers

	GM-004217

Prefix "GM", a dash, then six zero-padded digits.
*/
package scan
