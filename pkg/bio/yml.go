package bio

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultClassColumn is the name of the class column when metadata does not set one.
const DefaultClassColumn = "class"

/*
Metadata describes the samples of a set: the number of classes their labels
range over, the name of the column holding the class label, and the names
of the binary features in feature index order.
*/
type Metadata struct {
	Classes  int      `yaml:"classes"`
	Class    string   `yaml:"class,omitempty"`
	Features []string `yaml:"features"`
}

// Validate returns an error if the metadata cannot describe a set of samples.
func (md *Metadata) Validate() error {
	if md.Classes <= 0 {
		return fmt.Errorf("metadata must declare a positive number of classes, got %d", md.Classes)
	}
	if len(md.Features) == 0 {
		return fmt.Errorf("metadata declares no features")
	}
	names := make(map[string]bool, len(md.Features)+1)
	names[md.ClassColumn()] = true
	for _, f := range md.Features {
		if f == "" {
			return fmt.Errorf("metadata declares a feature without name")
		}
		if names[f] {
			return fmt.Errorf("metadata declares column %q more than once", f)
		}
		names[f] = true
	}
	return nil
}

// ClassColumn returns the name of the class column.
func (md *Metadata) ClassColumn() string {
	if md.Class == "" {
		return DefaultClassColumn
	}
	return md.Class
}

/*
ReadYMLMetadata takes a slice of bytes with a metadata specification in YML
and returns the metadata parsed from it or an error.
The YML is expected to be an object with a "classes" integer property, a
"features" list of feature names and optionally a "class" property with the
name of the class column.
*/
func ReadYMLMetadata(data []byte) (*Metadata, error) {
	md := &Metadata{}
	if err := yaml.UnmarshalStrict(data, md); err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return md, nil
}

/*
ReadYMLMetadataFromFile takes a filepath string, reads its contents and uses
ReadYMLMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadYMLMetadataFromFile(filepath string) (*Metadata, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	md, err := ReadYMLMetadata(data)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return md, err
}

/*
WriteYMLMetadata takes a filepath and metadata and writes the metadata as
YML onto the file, creating or truncating it.
*/
func WriteYMLMetadata(filepath string, md *Metadata) error {
	data, err := yaml.Marshal(md)
	if err != nil {
		return fmt.Errorf("serializing metadata as yml: %v", err)
	}
	if err = os.WriteFile(filepath, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata yml file %s: %v", filepath, err)
	}
	return nil
}
