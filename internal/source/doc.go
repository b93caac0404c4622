// Package source retrieves catalog documents.
//
// Each backend implements catalog.Source for one kind of location:
//
//	HTTPSource  http:// and https:// (published spreadsheet CSV exports)
//	S3Source    s3://bucket/key
//	FileSource  file:///path or a bare filesystem path
//
// Mux dispatches on the location scheme. No backend caches; every Fetch
// reads the live document.
package source
