package cluster

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/one-love/onelove/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRepository_SaveProvider_FailedProviderSaveSkipsClusterSave(t *testing.T) {
	conn := &failingConnPool{err: errors.New("connection refused")}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	repository := NewRepository(db)

	cluster := &model.Cluster{ID: 1, Name: "alpha"}
	provider := &model.Provider{ID: 2, ClusterID: 1, Name: "hetzner"}

	err = repository.saveProvider(context.Background(), provider, cluster)

	require.ErrorContains(t, err, `failed to save provider "hetzner"`)
	require.NotEmpty(t, conn.queries)
	for _, query := range conn.queries {
		assert.NotContains(t, query, `"clusters"`)
	}
}

// failingConnPool records every statement gorm issues and fails them all, so
// tests can assert which statements were attempted.
type failingConnPool struct {
	err     error
	queries []string
}

func (f *failingConnPool) PrepareContext(_ context.Context, query string) (*sql.Stmt, error) {
	f.queries = append(f.queries, query)
	return nil, f.err
}

func (f *failingConnPool) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	f.queries = append(f.queries, query)
	return nil, f.err
}

func (f *failingConnPool) QueryContext(_ context.Context, query string, _ ...interface{}) (*sql.Rows, error) {
	f.queries = append(f.queries, query)
	return nil, f.err
}

func (f *failingConnPool) QueryRowContext(_ context.Context, query string, _ ...interface{}) *sql.Row {
	f.queries = append(f.queries, query)
	return &sql.Row{}
}
