// Package catalog builds the storefront catalogs from spreadsheet exports.
//
// There are two catalogs, each fed by its own CSV document:
//
//   - Packs: game-account bundles, one row per bundle, keyed by "Pack ID".
//   - Units: individually sold games, one row per game.
//
// A fetch retrieves the document through a [Source], tokenizes it with the
// sheet package, resolves the header row once and normalizes every data row
// independently. Row problems never fail a fetch: rows without a usable id
// (packs) or name (units) are dropped, and malformed numbers read as zero.
// Only a missing source location ([ErrSourceNotConfigured]) or a failed
// retrieval ([RetrievalError]) is returned as an error.
//
// Nothing is cached here. Every call reads the source again; callers that
// want caching or deadlines wrap the [Fetcher].
package catalog
