// Package analysis looks for rhythm in a run's population series.
//
// Emission is random per node, but gravity and fade give every particle a
// similar lifetime, so the live population tends to breathe:
//
//	ps := analysis.PowerSpectrum(particles)
//	peak := analysis.Dominant(ps, len(particles), 60)
//	fmt.Printf("period: %.1f frames\n", peak.PeriodFrames)
package analysis
