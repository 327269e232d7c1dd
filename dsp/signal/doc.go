// Package signal generates deterministic test and demonstration signals,
// including a synthetic photoplethysmogram whose pulse train is modulated
// by breathing.
package signal
