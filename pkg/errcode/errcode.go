package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBUnknownDriverError
	DBTableCheckError
	DBDropTableError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError

	// Store errors
	StoreQueryError
	StoreWriteError
	PersonNotFoundError
	SourceNotFoundError

	// Import errors
	ImportFileTooLargeError
	ImportDuplicateSourceError
	ImportMalformedFileError
	ImportSourceStateError
	ImportCancelledError

	// Query errors
	InvalidParameterError

	// HTTP errors
	ServerStartError

	// Maintenance errors
	OptimizeError
)
