// Package conststore persists computed mathematical constants so that a new
// engine context can start with π, e and the logarithm constants at the
// precision an earlier run already paid for.
//
// SQLiteStore keeps one row per constant in the constants table; a row is
// only replaced by a value with more digits. MemoryStore offers the same
// behavior without a database and is meant for tests.
package conststore
