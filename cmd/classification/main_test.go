package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tosinoni/classification"
	"github.com/tosinoni/classification/dataset"
	"github.com/tosinoni/classification/pkg/bio"
)

func testMetadata() *bio.Metadata {
	return &bio.Metadata{Classes: 2, Features: []string{"outlook", "windy"}}
}

func testSet() dataset.Set {
	return dataset.Set{
		dataset.NewSample([]int{0, 0}, 1),
		dataset.NewSample([]int{0, 1}, 1),
		dataset.NewSample([]int{1, 0}, 2),
		dataset.NewSample([]int{1, 1}, 2),
	}
}

func TestBackendFor(t *testing.T) {
	cases := map[string]setBackend{
		"":                                  csvBackend,
		"samples.csv":                       csvBackend,
		"/tmp/samples.db":                   sqlite3Backend,
		"postgresql://user@localhost/golf":  pgBackend,
		"mongodb://localhost:27017/golf":    mongoBackend,
		"postgresql://localhost/samples.db": pgBackend,
	}
	for location, expected := range cases {
		assert.Equal(t, expected, backendFor(location), location)
	}
}

func TestWriteAndReadCSVSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	md := testMetadata()
	n, err := writeSet(context.Background(), path, md, testSet())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "outlook,windy,class\n0,0,1\n0,1,1\n1,0,2\n1,1,2\n", string(data))

	set, err := readSet(context.Background(), path, md)
	require.NoError(t, err)
	require.Equal(t, 4, set.Count())
	for i, s := range testSet() {
		assert.Equal(t, dataset.Values(s), dataset.Values(set[i]))
		assert.Equal(t, s.Class(), set[i].Class())
	}
}

func TestSaveAndLoadTreeFile(t *testing.T) {
	root, err := classification.BuildTree(testSet(), 2, 2)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, saveTree(context.Background(), "", path, root))

	loaded, err := loadTree(context.Background(), "", path)
	require.NoError(t, err)
	assert.Equal(t, root.String(), loaded.String())

	_, err = loadTree(context.Background(), "", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPredict(t *testing.T) {
	root, err := classification.BuildTree(testSet(), 2, 2)
	require.NoError(t, err)
	md := testMetadata()

	class, err := predict(root, md, []string{"windy=1", "outlook=0"})
	require.NoError(t, err)
	assert.Equal(t, 1, class)
	class, err = predict(root, md, []string{"outlook=1", "windy=0"})
	require.NoError(t, err)
	assert.Equal(t, 2, class)

	for _, args := range [][]string{
		{"outlook=1"},
		{"outlook=1", "windy"},
		{"outlook=1", "humid=0"},
		{"outlook=x", "windy=0"},
		{"outlook=2", "windy=0"},
	} {
		_, err = predict(root, md, args)
		assert.Error(t, err, "%v", args)
	}
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("loud", "", false)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "classification.log")
	logger, err := newLogger("info", path, false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("growing", zap.Int("samples", 4))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"growing"`)
	assert.Contains(t, string(data), `"samples":4`)
	assert.NotContains(t, string(data), "hidden")

	logger, err = newLogger("error", "", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestCommandValidation(t *testing.T) {
	root := &rootCmdConfig{}
	assert.Error(t, (&growCmdConfig{rootCmdConfig: root, builderFlags: builderFlags{branching: "unsplit-zero"}}).Validate())
	assert.Error(t, (&growCmdConfig{rootCmdConfig: root, metadataInput: "md.yml", builderFlags: builderFlags{branching: "sideways"}}).Validate())
	assert.Error(t, (&growCmdConfig{rootCmdConfig: root, metadataInput: "md.yml", redisAddr: "localhost:6379", builderFlags: builderFlags{branching: "split-both"}}).Validate())
	assert.NoError(t, (&growCmdConfig{rootCmdConfig: root, metadataInput: "md.yml", builderFlags: builderFlags{branching: "split-both"}}).Validate())

	assert.Error(t, (&treeCmdConfig{rootCmdConfig: root}).Validate())
	assert.Error(t, (&treeCmdConfig{rootCmdConfig: root, list: true}).Validate())
	assert.NoError(t, (&treeCmdConfig{rootCmdConfig: root, list: true, redisAddr: "localhost:6379"}).Validate())

	assert.Error(t, (&testCmdConfig{rootCmdConfig: root, treeInput: "-", metadataInput: "md.yml"}).Validate())
	assert.NoError(t, (&testCmdConfig{rootCmdConfig: root, treeInput: "-", metadataInput: "md.yml", testSetInput: "test.csv"}).Validate())

	assert.Error(t, (&crossvalCmdConfig{rootCmdConfig: root, metadataInput: "md.yml", folds: 1}).Validate())
	assert.Error(t, (&setCmdConfig{rootCmdConfig: root, metadataInput: "md.yml", setInput: "a.db", setOutput: "a.db"}).Validate())
	assert.Error(t, (&splitCmdConfig{rootCmdConfig: root, metadataInput: "md.yml", splitOutput: "s.csv", splitProbability: 101}).Validate())
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "classification v0.1.0\n", out.String())
}
