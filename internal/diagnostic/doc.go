// Package diagnostic provides structured errors, warnings and informational
// messages produced while compiling mapping plans.
//
// Key capabilities:
//   - Accumulating every configuration problem of one compile attempt
//   - Ambiguous match reports with the competing source paths
//   - Unmapped destination path warnings
//   - A single Report error raised once per failed attempt
package diagnostic
