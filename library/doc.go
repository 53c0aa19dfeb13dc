// Package library implements the content memory banks behind draftwise.
//
// Two banks exist: the user's own past content ("style") and transcripts
// from admired creators ("creators"). Each entry is stored twice:
//
//   - a SQLite catalog, the source of truth for exact operations
//     (listing, per-creator grouping, deletion, counts)
//   - a chromem-go vector index, answering similarity queries that feed
//     the enhancement prompt
//
// Entries are embedded once on add, through whatever embed.Embedder the
// library was opened with. Search embeds only the first 500 characters of
// the query text, since the opening of a draft carries its topic.
//
// Both stores persist under a single data directory so the library can be
// moved or wiped as one unit.
package library
