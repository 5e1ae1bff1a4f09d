// Package domain contains the core prediction logic: the production
// estimate formula, farming technique labels, and the recommendation
// text sanitizer. It has no dependencies on transport or providers.
package domain
