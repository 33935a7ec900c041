package catalog_test

import (
	"testing"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Array(t *testing.T) {
	t.Parallel()

	payload := `[
		{"title": "Trusts Law", "url_txt": "data/Trusts_Law.txt", "jurisdiction": "NSW"},
		{"name": "Evidence Act", "txt": "data/Evidence_Act.txt"},
		{"note": "no location here"}
	]`

	res, err := catalog.Parse([]byte(payload), lexscan.KindLaw)
	require.NoError(t, err)

	require.Len(t, res.Descriptors, 2)
	assert.Equal(t, 1, res.Skipped)

	assert.Equal(t, "data/Trusts_Law.txt", res.Descriptors[0].SourceLocation)
	assert.Equal(t, "Trusts Law", res.Descriptors[0].Title)
	assert.Equal(t, lexscan.KindLaw, res.Descriptors[0].Kind)
	assert.Equal(t, "NSW", res.Descriptors[0].Jurisdiction)

	assert.Equal(t, "Evidence Act", res.Descriptors[1].Title)
	assert.Empty(t, res.Descriptors[1].Jurisdiction)
}

func TestParse_ItemsContainer(t *testing.T) {
	t.Parallel()

	payload := `{
		"generated": "2024-06-01",
		"items": [
			{"url": "https://img.lawcorpus.example/a.txt", "title": "A"},
			{"url": "https://img.lawcorpus.example/b.txt", "title": "B"}
		]
	}`

	res, err := catalog.Parse([]byte(payload), lexscan.KindTextbook)
	require.NoError(t, err)

	require.Len(t, res.Descriptors, 2)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, "A", res.Descriptors[0].Title)
	assert.Equal(t, "B", res.Descriptors[1].Title)
}

func TestParse_ObjectOfRecords(t *testing.T) {
	t.Parallel()

	payload := `{
		"r1": {"href": "rules/civil_procedure.txt"},
		"r2": {"file": "rules/criminal%20procedure.txt", "label": "Criminal Procedure"},
		"meta": "2024-06-01"
	}`

	res, err := catalog.Parse([]byte(payload), lexscan.KindRule)
	require.NoError(t, err)

	require.Len(t, res.Descriptors, 2)
	assert.Equal(t, 1, res.Skipped)

	// Source order is preserved.
	assert.Equal(t, "rules/civil_procedure.txt", res.Descriptors[0].SourceLocation)
	assert.Equal(t, "rules/criminal%20procedure.txt", res.Descriptors[1].SourceLocation)
	assert.Equal(t, "Criminal Procedure", res.Descriptors[1].Title)
}

func TestParse_TitleFallsBackToFilename(t *testing.T) {
	t.Parallel()

	payload := `[{"url_txt": "data/Property_Law-2nd%20Edition.txt"}]`

	res, err := catalog.Parse([]byte(payload), lexscan.KindTextbook)
	require.NoError(t, err)

	require.Len(t, res.Descriptors, 1)
	assert.Equal(t, "Property Law 2nd Edition", res.Descriptors[0].Title)
}

func TestParse_LocationPriority(t *testing.T) {
	t.Parallel()

	// url_txt outranks url even when url comes first in the payload.
	payload := `[{"url": "data/a.html", "url_txt": "data/a.txt"}]`

	res, err := catalog.Parse([]byte(payload), lexscan.KindLaw)
	require.NoError(t, err)

	require.Len(t, res.Descriptors, 1)
	assert.Equal(t, "data/a.txt", res.Descriptors[0].SourceLocation)
}

func TestParse_BlankLocationSkipped(t *testing.T) {
	t.Parallel()

	payload := `[{"url_txt": "   "}, {"url_txt": 42}, null]`

	res, err := catalog.Parse([]byte(payload), lexscan.KindLaw)
	require.NoError(t, err)

	assert.Empty(t, res.Descriptors)
	assert.Equal(t, 3, res.Skipped)
}

func TestParse_MalformedPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{"truncated", `[{"url_txt": "a.txt"`},
		{"scalar root", `"not a catalog"`},
		{"html error page", `<html>503</html>`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.Parse([]byte(tt.payload), lexscan.KindLaw)
			assert.Equal(t, lexscan.ECATALOG, lexscan.ErrorCode(err))
		})
	}
}

func TestParse_ItemsNotArray(t *testing.T) {
	t.Parallel()

	// An items property that is not an array is an ordinary record value.
	payload := `{"items": {"url_txt": "data/a.txt"}}`

	res, err := catalog.Parse([]byte(payload), lexscan.KindLaw)
	require.NoError(t, err)

	require.Len(t, res.Descriptors, 1)
	assert.Equal(t, "data/a.txt", res.Descriptors[0].SourceLocation)
}
