package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/woodtho/charge/types"
)

// File reads rooms from a YAML document on every ListRooms call.
//
// The document is a "rooms" list of RoomRecord entries:
//
//	rooms:
//	  - room: A-1
//	    time: 2026-10-16T07:30:00+10:00
//	    tags: {over_24: true, bfi: true}
//	  - room: "12"
//	    time: 2026-10-16T09:00:00+10:00
//	    tags: {discharge: true}
//
// The file is trusted like any other source: ids are not checked for uniqueness.
type File struct {
	path string
}

var _ types.RoomSource = (*File)(nil)

// fileDocument is the on-disk layout read by File.
type fileDocument struct {
	Rooms []types.RoomRecord `yaml:"rooms"`
}

// NewFile creates a room source backed by the YAML file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// ListRooms reads and decodes the file.
//
// Returns:
//   - []types.RoomRecord: Rooms in file order (empty, never nil, for an empty list)
//   - error: Read or decode failure
func (f *File) ListRooms(ctx context.Context) ([]types.RoomRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read rooms %s: %w", f.path, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode rooms %s: %w", f.path, err)
	}

	if doc.Rooms == nil {
		return []types.RoomRecord{}, nil
	}

	return doc.Rooms, nil
}
