// Package estimate computes the standard error of a sample proportion drawn
// without replacement from a finite population, and the normal-approximation
// confidence intervals around it.
//
// The standard error combines the simple-random-sampling term with the
// finite-population correction:
//
//	SE = sqrt(p(1-p)/n) * sqrt((N-n)/(N-1))
//
// Intervals are p ± z·SE and are not clamped to [0, 1]; near the edges of the
// proportion range they may extend past them, which is a property of the
// normal approximation.
package estimate
