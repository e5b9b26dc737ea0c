// Package match implements the grant matching engine: profile normalization,
// the eligibility filter pipeline, the rule-based and similarity scorers, and
// the mode controller that ties them together. The engine works on in-memory
// corpus snapshots and never mutates the grants it is given.
package match
