/*
Package mongo provides reading and writing of sample sets on a MongoDB
database. Each sample is a document of the samples collection with an
integer field per feature and class column, named after them, plus a
"seq" field keeping the order of the set.
*/
package mongo

import (
	"context"
	"fmt"

	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/pkg/bio"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	samplesCollectionName = "samples"
	seqField              = "seq"
	// MaxSampleInsertionsPerBulk is the number of samples inserted by each bulk operation.
	MaxSampleInsertionsPerBulk = 1000
)

/*
Dial takes a MongoDB connection URL and returns a session to the server
whose default database is the one in the URL.
*/
func Dial(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %v", err)
	}
	return session, nil
}

/*
ReadSet takes a context, a MongoDB session and metadata and returns the
samples on the session's default database in set order, or an error if
they cannot be read or do not fit the metadata.
*/
func ReadSet(ctx context.Context, session *mgo.Session, md *bio.Metadata) (dataset.Set, error) {
	iter := samplesCollection(session).Find(nil).Sort(seqField).Iter()
	defer iter.Close()
	var samples []dataset.Sample
	var doc bson.M
	for i := 0; iter.Next(&doc); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := sampleFromDocument(doc, md)
		if err != nil {
			return nil, fmt.Errorf("reading sample %d: %v", i, err)
		}
		samples = append(samples, s)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading samples from MongoDB: %v", err)
	}
	return dataset.New(samples), nil
}

/*
WriteSet takes a context, a MongoDB session, metadata and a set and inserts
the set samples on the session's default database after any samples already
there. It returns the number of samples written or an error.
*/
func WriteSet(ctx context.Context, session *mgo.Session, md *bio.Metadata, s dataset.Set) (int, error) {
	c := samplesCollection(session)
	if err := c.EnsureIndexKey(seqField); err != nil {
		return 0, fmt.Errorf("ensuring samples index: %v", err)
	}
	offset, err := c.Count()
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	var written int
	for chunkStart := 0; chunkStart < s.Count(); chunkStart += MaxSampleInsertionsPerBulk {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		chunkEnd := chunkStart + MaxSampleInsertionsPerBulk
		if chunkEnd > s.Count() {
			chunkEnd = s.Count()
		}
		bulk := c.Bulk()
		for i, sample := range s[chunkStart:chunkEnd] {
			doc, err := documentFromSample(sample, md)
			if err != nil {
				return written, fmt.Errorf("writing sample %d: %v", chunkStart+i, err)
			}
			doc[seqField] = offset + chunkStart + i
			bulk.Insert(doc)
		}
		if _, err := bulk.Run(); err != nil {
			return written, fmt.Errorf("inserting samples into MongoDB: %v", err)
		}
		written += chunkEnd - chunkStart
	}
	return written, nil
}

func samplesCollection(session *mgo.Session) *mgo.Collection {
	return session.DB("").C(samplesCollectionName)
}

func documentFromSample(s dataset.Sample, md *bio.Metadata) (bson.M, error) {
	doc := bson.M{md.ClassColumn(): s.Class()}
	for i, name := range md.Features {
		v, err := s.ValueFor(i)
		if err != nil {
			return nil, err
		}
		doc[name] = v
	}
	return doc, nil
}

func sampleFromDocument(doc bson.M, md *bio.Metadata) (dataset.Sample, error) {
	values := make([]int, len(md.Features))
	for i, name := range md.Features {
		v, err := intField(doc, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	class, err := intField(doc, md.ClassColumn())
	if err != nil {
		return nil, err
	}
	return bio.NewSample(md, values, class)
}

func intField(doc bson.M, name string) (int, error) {
	switch v := doc[name].(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case nil:
		return 0, fmt.Errorf("missing field %s", name)
	}
	return 0, fmt.Errorf("field %s holds %v of type %T instead of an integer", name, doc[name], doc[name])
}
