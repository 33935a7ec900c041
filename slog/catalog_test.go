package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/mock"
	lexslog "github.com/lawcorpus/lexscan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCatalogSource_FetchCatalog(t *testing.T) {
	t.Parallel()

	t.Run("logs catalog fetch with name and bytes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogSource{
			FetchCatalogFn: func(_ context.Context, _ lexscan.Catalog) ([]byte, error) {
				return []byte(`[]`), nil
			},
		}

		source := lexslog.NewLoggingCatalogSource(inner, logger)
		payload, err := source.FetchCatalog(context.Background(), lexscan.Catalog{
			Name: "laws",
			URL:  "https://corpus.example.com/catalogs/laws.json",
			Kind: lexscan.KindLaw,
		})

		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), payload)
		output := buf.String()
		assert.Contains(t, output, "catalog fetch")
		assert.Contains(t, output, "catalog=laws")
		assert.Contains(t, output, "bytes=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogSource{
			FetchCatalogFn: func(_ context.Context, _ lexscan.Catalog) ([]byte, error) {
				return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog unavailable")
			},
		}

		source := lexslog.NewLoggingCatalogSource(inner, logger)
		_, err := source.FetchCatalog(context.Background(), lexscan.Catalog{Name: "laws"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "catalog unavailable")
	})
}

func TestLoggingInventorySource_DiscoverInventory(t *testing.T) {
	t.Parallel()

	t.Run("logs discovery with origin and filename counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.InventorySource{
			DiscoverInventoryFn: func(_ context.Context, _ []string) (lexscan.SyncInventory, error) {
				inv := lexscan.SyncInventory{}
				inv.Add("https://corpus.example.com", "https://corpus.example.com/texts/a.txt")
				inv.Add("https://corpus.example.com", "https://corpus.example.com/texts/b.txt")
				return inv, nil
			},
		}

		source := lexslog.NewLoggingInventorySource(inner, logger)
		inv, err := source.DiscoverInventory(context.Background(), []string{"https://corpus.example.com"})

		require.NoError(t, err)
		assert.Len(t, inv, 2)
		output := buf.String()
		assert.Contains(t, output, "inventory discovery")
		assert.Contains(t, output, "origins=1")
		assert.Contains(t, output, "filenames=2")
	})
}
