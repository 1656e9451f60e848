// Package content implements the content risk analyzer: a deterministic,
// rule-based inspection pipeline that turns raw page markup plus the page URL
// into a structured risk report.
//
// Architecture:
//
//	Document              — immutable parsed HTML tree; derived filtered
//	                        copies instead of in-place mutation
//	detectors             — seven independent, side-effect-free checks
//	                        (hidden content, prompt injection, deceptive UI,
//	                        phishing, fake dialogs, suspicious targets,
//	                        homograph domains)
//	Analyze               — runs every detector unconditionally and fuses
//	                        their signals into a clamped 0-10 risk score
//
// Every detector is explainable: each contribution to the score carries a
// human-readable reason, accumulated in a fixed order. Trusted domains get
// discounted weights, not immunity.
package content
