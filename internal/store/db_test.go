package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"go-order-pipeline/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.CreateRun("r1", "shipment"))
	require.NoError(t, db.UpdateRunStatus("r1", "completed"))
	require.NoError(t, db.SaveRunSummary("r1", map[string]int{"records": 3}))
	require.NoError(t, db.SaveRunError("r1", "memo.csv", "unrecognized_source", "no match"))

	run, err := db.GetRun("r1")
	require.NoError(t, err)
	assert.Equal(t, "shipment", run.Kind)
	assert.Equal(t, "completed", run.Status)
	var summary map[string]int
	require.NoError(t, json.Unmarshal(run.Summary, &summary))
	assert.Equal(t, 3, summary["records"])
	assert.False(t, run.CreatedAt.IsZero())

	errs, err := db.GetRunErrors("r1")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "memo.csv", errs[0].FileName)
	assert.Equal(t, "unrecognized_source", errs[0].ErrorType)

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].ID)
}

func TestGetRunNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.GetRun("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArtifacts(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.CreateRun("r1", "management"))

	require.NoError(t, db.SaveArtifact("r1", model.Artifact{FileName: "주문관리_20240314.xlsx", Kind: "management", Content: []byte("v1")}))
	require.NoError(t, db.SaveArtifact("r1", model.Artifact{FileName: "주문관리_20240314.xlsx", Kind: "management", Content: []byte("v2")}))

	a, err := db.GetArtifact("r1", "주문관리_20240314.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), a.Content)
	assert.Equal(t, "management", a.Kind)

	list, err := db.ListArtifacts("r1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Content)

	_, err = db.GetArtifact("r1", "other.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenInMemory(t *testing.T) {
	db, err := Open("file::memory:?cache=shared")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.CreateRun("mem", "paste"))
	_, err = db.GetRun("mem")
	assert.NoError(t, err)
}
