package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/pkg/bio"
	"github.com/tosinoni/classification/pkg/bio/mongo"
	biosql "github.com/tosinoni/classification/pkg/bio/sql"
	"github.com/tosinoni/classification/pkg/bio/sql/pgadapter"
	"github.com/tosinoni/classification/pkg/bio/sql/sqlite3adapter"
	"github.com/tosinoni/classification/tree"
	treejson "github.com/tosinoni/classification/tree/json"
	"github.com/tosinoni/classification/tree/redisstore"
)

const (
	pgURLPrefix    = "postgresql://"
	mongoURLPrefix = "mongodb://"
	sqlite3Ext     = ".db"
	stdLocation    = "-"
	redisKeyPrefix = "classification:tree:"
)

type setBackend int

const (
	csvBackend setBackend = iota
	sqlite3Backend
	pgBackend
	mongoBackend
)

/*
backendFor takes the location of a set and returns the backend that stores
it: PostgreSQL and MongoDB URLs select those databases, paths with a .db
extension select an SQLite3 database and anything else is a CSV file.
*/
func backendFor(location string) setBackend {
	switch {
	case strings.HasPrefix(location, pgURLPrefix):
		return pgBackend
	case strings.HasPrefix(location, mongoURLPrefix):
		return mongoBackend
	case filepath.Ext(location) == sqlite3Ext:
		return sqlite3Backend
	default:
		return csvBackend
	}
}

func openAdapter(location string, backend setBackend) (biosql.Adapter, error) {
	if backend == pgBackend {
		return pgadapter.New(location)
	}
	return sqlite3adapter.New(location, 1)
}

/*
readSet takes a context, the location of a set and its metadata and returns
the set read from it. An empty location or "-" reads a CSV set from STDIN.
*/
func readSet(ctx context.Context, location string, md *bio.Metadata) (dataset.Set, error) {
	if location == stdLocation {
		location = ""
	}
	switch backend := backendFor(location); backend {
	case sqlite3Backend, pgBackend:
		adapter, err := openAdapter(location, backend)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return biosql.OpenSet(ctx, adapter, md)
	case mongoBackend:
		session, err := mongo.Dial(location)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		return mongo.ReadSet(ctx, session, md)
	default:
		return bio.ReadCSVSetFromFilePath(location, md)
	}
}

/*
writeSet takes a context, the location of a set, metadata and a set and
writes the set to the location, returning the number of samples written. An
empty location or "-" writes a CSV set to STDOUT.
*/
func writeSet(ctx context.Context, location string, md *bio.Metadata, s dataset.Set) (int, error) {
	if location == stdLocation {
		location = ""
	}
	switch backend := backendFor(location); backend {
	case sqlite3Backend, pgBackend:
		adapter, err := openAdapter(location, backend)
		if err != nil {
			return 0, err
		}
		defer adapter.Close()
		return biosql.WriteSet(ctx, adapter, md, s)
	case mongoBackend:
		session, err := mongo.Dial(location)
		if err != nil {
			return 0, err
		}
		defer session.Close()
		return mongo.WriteSet(ctx, session, md, s)
	default:
		return writeCSVSet(location, md, s)
	}
}

func writeCSVSet(path string, md *bio.Metadata, s dataset.Set) (int, error) {
	f := os.Stdout
	if path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return 0, fmt.Errorf("creating %s: %v", path, err)
		}
		defer f.Close()
	}
	w, err := bio.NewCSVWriter(f, md)
	if err != nil {
		return 0, err
	}
	for _, sample := range s {
		if err = w.Write(sample); err != nil {
			return w.Count(), err
		}
	}
	if err = w.Flush(); err != nil {
		return w.Count(), err
	}
	return w.Count(), nil
}

/*
loadTree takes a context, a redis address and a tree location and returns
the tree stored there. With an empty redis address the location is a path
to a JSON file ("-" for STDIN), otherwise it is the name of the tree on the
redis server.
*/
func loadTree(ctx context.Context, redisAddr, location string) (*tree.Node, error) {
	if redisAddr != "" {
		store, err := redisstore.Dial(ctx, redisAddr, redisKeyPrefix)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx, location)
	}
	if location == stdLocation {
		return treejson.ReadJSONTree(os.Stdin)
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("opening tree file %s: %v", location, err)
	}
	defer f.Close()
	root, err := treejson.ReadJSONTree(f)
	if err != nil {
		return nil, fmt.Errorf("reading tree from %s: %v", location, err)
	}
	return root, nil
}

// saveTree is the counterpart of loadTree.
func saveTree(ctx context.Context, redisAddr, location string, root *tree.Node) error {
	if redisAddr != "" {
		store, err := redisstore.Dial(ctx, redisAddr, redisKeyPrefix)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Save(ctx, location, root)
	}
	if location == stdLocation {
		return treejson.WriteJSONTree(os.Stdout, root)
	}
	f, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("creating tree file %s: %v", location, err)
	}
	err = treejson.WriteJSONTree(f, root)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing tree to %s: %v", location, err)
	}
	return nil
}

func readMetadata(rootConfig *rootCmdConfig, path string) (*bio.Metadata, error) {
	rootConfig.Logf("Reading metadata from %s...", path)
	md, err := bio.ReadYMLMetadataFromFile(path)
	if err != nil {
		return nil, err
	}
	rootConfig.Logf("Metadata read: %d classes and %d features", md.Classes, len(md.Features))
	return md, nil
}
