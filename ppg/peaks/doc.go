// Package peaks locates systolic peaks and the troughs between them in a
// bandpass-filtered pulse waveform.
//
// Candidate peaks are strict local maxima with positive amplitude. They are
// accepted greedily from the tallest down, skipping any candidate closer
// than a minimum distance to one already accepted, so a weak shoulder next
// to a strong beat never displaces it. The default minimum distance of
// 0.25 s caps the detectable heart rate at 240 beats per minute.
package peaks
