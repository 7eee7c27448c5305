package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBuildsDataset(t *testing.T) {
	dir := t.TempDir()
	datasetFile := writeFile(t, dir, "dataset.txt", "0000011111\n")
	labelsFile := writeFile(t, dir, "labels.txt", "0000011111\n")
	covariatesFile := writeFile(t, dir, "strata.txt", "10\n")

	ds, err := Load(context.Background(), Paths{
		DatasetFile:    datasetFile,
		LabelsFile:     labelsFile,
		CovariatesFile: covariatesFile,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, ds.N)
	assert.Equal(t, 1, ds.L)
	assert.Equal(t, 1, ds.K)
}

func TestLoadRejectsBadLabelCharacters(t *testing.T) {
	dir := t.TempDir()
	datasetFile := writeFile(t, dir, "dataset.txt", "0000011111\n")
	labelsFile := writeFile(t, dir, "labels.txt", "000001111x\n")
	covariatesFile := writeFile(t, dir, "strata.txt", "10\n")

	_, err := Load(context.Background(), Paths{
		DatasetFile:    datasetFile,
		LabelsFile:     labelsFile,
		CovariatesFile: covariatesFile,
	})
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	dir := t.TempDir()
	labelsFile := writeFile(t, dir, "labels.txt", "0000011111\n")
	covariatesFile := writeFile(t, dir, "strata.txt", "10\n")

	_, err := Load(context.Background(), Paths{
		DatasetFile:    filepath.Join(dir, "missing.txt"),
		LabelsFile:     labelsFile,
		CovariatesFile: covariatesFile,
	})
	assert.Error(t, err)
}
