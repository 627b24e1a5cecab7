package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/spantag/internal/database"
	"github.com/jask/spantag/internal/database/repository"
)

func openRepos(t *testing.T) (*repository.RunRepo, *repository.AnnotationRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewRunRepo(db), repository.NewAnnotationRepo(db)
}

func TestRunLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	runs, annotations := openRepos(t)

	missing, err := runs.ByName(ctx, "news")
	require.NoError(t, err)
	require.Nil(t, missing)

	now := database.Now()
	run := repository.Run{
		ID:            uuid.NewString(),
		Name:          "news",
		SentencePath:  "sents.txt",
		OutputDir:     "out",
		CurrentSentID: -1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, runs.Create(ctx, run))
	require.Error(t, runs.Create(ctx, repository.Run{ID: uuid.NewString(), Name: "news", CreatedAt: now, UpdatedAt: now}))

	require.NoError(t, runs.SetPosition(ctx, run.ID, 3, now))
	got, err := runs.ByName(ctx, "news")
	require.NoError(t, err)
	require.Equal(t, 3, got.CurrentSentID)
	require.Nil(t, got.FinishedAt)
	require.Equal(t, "sents.txt", got.SentencePath)

	require.NoError(t, annotations.Upsert(ctx, repository.Annotation{RunID: run.ID, SentID: 0, Body: "a  -", SavedAt: now}))
	require.NoError(t, annotations.Upsert(ctx, repository.Annotation{RunID: run.ID, SentID: 0, Body: "a  X", SavedAt: now}))
	require.NoError(t, annotations.Upsert(ctx, repository.Annotation{RunID: run.ID, SentID: 1, Body: "b  -", SavedAt: now}))

	a, err := annotations.Get(ctx, run.ID, 0)
	require.NoError(t, err)
	require.Equal(t, "a  X", a.Body)
	unsaved, err := annotations.Get(ctx, run.ID, 2)
	require.NoError(t, err)
	require.Nil(t, unsaved)

	n, err := annotations.CountByRun(ctx, run.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, runs.Finish(ctx, run.ID, now))
	list, err := runs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 2, list[0].Saved)
	require.NotNil(t, list[0].FinishedAt)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	require.NoError(t, database.RunMigrations(dbPath))
}
