// Package bankfeed aggregates financial transactions from multiple external
// bank APIs, normalizes them into one canonical model, computes spending
// statistics and detects recurring payments.
//
// The package itself is pure computation: source adapters (see the monobank and
// wise subpackages) fetch and normalize raw records, then everything downstream
// (aggregation, recurring detection, report values) is a function of a
// transaction list and a reporting window.
package bankfeed
