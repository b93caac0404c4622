// Package core serves the storefront's catalog reads.
//
// [Service] sits between the HTTP layer and the catalog fetcher. It adds
// what the fetcher leaves out:
//
//   - an optional response cache ([RedisCache]) keyed by catalog kind,
//   - a [FetchLimiter] bounding upstream fetches in flight,
//   - a warm scheduler that refreshes the cache before entries expire.
//
// Errors from every layer are mapped to coded user messages by [MapError].
package core
