// Package swaggerui provides the interactive viewer served next to
// generated documents.
//
// The embedded viewer loads Swagger UI from a CDN and reads the document
// address from the "url" query parameter:
//
//	/docs/index.html?url=/docs/swagger.json
//
// redoc.html and rapidoc.html render the same document with ReDoc and
// RapiDoc.
//
// The bundled files can be replaced by a zip archive (SetArchive) or any
// fs.FS (SetFS), and individual files can be supplied by a custom lookup
// (SetGetFile) that takes precedence over the archive.
package swaggerui
