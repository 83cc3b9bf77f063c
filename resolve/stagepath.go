package resolve

import "strings"

// StagePath is the stage location parsed from an @db.schema.stage/path
// file reference.
type StagePath struct {
	Database string
	Schema   string
	Stage    string
	File     string
}

// Qualified returns the db.schema.stage form used for stage grants.
func (s StagePath) Qualified() string {
	return s.Database + "." + s.Schema + "." + s.Stage
}

// ParseStagePath parses a semantic-model file reference. The leading @
// marks a stage reference; the remainder up to the first / must be a
// dot-separated database.schema.stage triple. A reference that does not
// match this grammar yields ok=false rather than an error: the file can
// still be analyzed for content, but no stage-read grant is derivable.
func ParseStagePath(ref string) (sp StagePath, ok bool) {
	if !strings.HasPrefix(ref, "@") {
		return StagePath{}, false
	}
	rest := strings.TrimPrefix(ref, "@")

	head, file, _ := strings.Cut(rest, "/")
	parts := strings.Split(head, ".")
	if len(parts) < 3 {
		return StagePath{}, false
	}
	return StagePath{
		Database: parts[0],
		Schema:   parts[1],
		Stage:    parts[2],
		File:     file,
	}, true
}
