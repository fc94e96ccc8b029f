// Package sink implements the two durable output destinations: the prices
// table in the catalog database and the consolidated CSV file.
//
// Both writers are order-preserving appenders. Each call covers one
// instrument's batch; the writers never update or delete rows already
// committed, and a failure in one sink never blocks the other.
package sink
