// Package ports defines the interfaces between the autograph library and
// its hosts: persistence of flow records for round trips, plus a reusable
// contract test suite any adapter can run against itself.
package ports
