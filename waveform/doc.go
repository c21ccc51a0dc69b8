// Package waveform chains tendencies into one logical signal.
//
// New builds each tendency through the tendency registry, links them in list
// order (each tendency's predecessor first, then the predecessor's successor)
// and records per-tendency problems as line-tagged annotations:
//
//	time and value errors      error
//	unknown spec fields        error
//	gaps between neighbours    warning
//	overlapping neighbours     warning
//
// Evaluation rules:
//   - Values: the last listed tendency whose [start, end) holds t wins; the
//     final tendency also owns its end point. Times inside a gap between two
//     consecutive tendencies are interpolated linearly between the earlier
//     tendency's end value and the later one's start value. Everything else,
//     including times before the first start and after the last end, is 0.
//   - Derivatives: as Values, but gaps are 0.
//   - Generate: the natural grids of the tendencies, concatenated in order.
//
// A Waveform implements tendency.Sequence, which is how repeat tendencies
// nest whole waveforms.
package waveform
