// Package catalog reads the set of trackable instruments from the catalog
// database.
//
// One row per instrument is produced by joining the commodities and prices
// tables, grouped by mnemonic, with the maximum stored price date carried
// along so the pipeline can resume incrementally. Template entries and the
// excluded mnemonics never appear in the result.
package catalog
