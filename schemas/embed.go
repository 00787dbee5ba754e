// Package schemas holds the JSON Schemas for the records the scanner emits.
package schemas

import _ "embed"

// DiplomaRecordSchema is the draft-07 schema of a serialized types.DiplomaRecord.
//
//go:embed diploma_record.schema.json
var DiplomaRecordSchema string

// DiplomaRecordFile is the file name of DiplomaRecordSchema within this directory.
const DiplomaRecordFile = "diploma_record.schema.json"
