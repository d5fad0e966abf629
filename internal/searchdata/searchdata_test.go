package searchdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func factIndex() *Index {
	return NewIndex([]Dataset{{
		Source: Source{ID: "reports", Title: "Reportes"},
		Records: []model.SearchRecord{
			{Question: "What is a fact?", Answer: "Something true."},
			{Question: "Monthly total", Answer: "1200"},
			{Question: "Open invoices", Answer: "14 pending"},
			{Question: "Top customer", Answer: "ACME"},
			{Question: "Best month", Answer: "March"},
		},
	}})
}

func TestSearchFactScenario(t *testing.T) {
	groups := factIndex().Search("fact")
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Matches, 1)
	assert.Equal(t, "reports", groups[0].SectionID)
	assert.Equal(t, "Reportes", groups[0].Title)
	assert.Equal(t, model.MatchQuestion, groups[0].Matches[0].MatchType)
}

func TestSearchShortQueryClears(t *testing.T) {
	ix := factIndex()
	assert.Nil(t, ix.Search("f"))
	assert.Nil(t, ix.Search(" w "))
	assert.Nil(t, ix.Search(""))
}

func TestSearchNoMatches(t *testing.T) {
	assert.Empty(t, factIndex().Search("zzz"))
}

func TestSearchQuestionWinsOverAnswer(t *testing.T) {
	ix := NewIndex([]Dataset{{
		Source: Source{ID: "sales", Title: "Ventas"},
		Records: []model.SearchRecord{
			{Question: "Total sales", Answer: "sales were flat"},
			{Question: "Q3", Answer: "Sales grew"},
		},
	}})
	groups := ix.Search("SALES")
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Matches, 2)
	assert.Equal(t, model.MatchQuestion, groups[0].Matches[0].MatchType)
	assert.Equal(t, model.MatchAnswer, groups[0].Matches[1].MatchType)
}

func TestSearchCapsPerDatasetAndOmitsEmpty(t *testing.T) {
	var recs []model.SearchRecord
	for i := 0; i < 6; i++ {
		recs = append(recs, model.SearchRecord{Question: "stock item", Answer: "x"})
	}
	ix := NewIndex([]Dataset{
		{Source: Source{ID: "balances", Title: "Saldos"}, Records: []model.SearchRecord{{Question: "cash", Answer: "100"}}},
		{Source: Source{ID: "inventory", Title: "Inventario"}, Records: recs},
	})
	groups := ix.Search("stock")
	require.Len(t, groups, 1)
	assert.Equal(t, "inventory", groups[0].SectionID)
	assert.Len(t, groups[0].Matches, MaxMatchesPerDataset)
}

func TestTruncateAnswer(t *testing.T) {
	short := "short"
	assert.Equal(t, short, TruncateAnswer(short, AnswerPreviewLen))

	long := strings.Repeat("á", 120)
	got := TruncateAnswer(long, AnswerPreviewLen)
	assert.Equal(t, strings.Repeat("á", 100)+"...", got)
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Clientes", TitleFor("customers"))
	assert.Equal(t, "other", TitleFor("other"))
}

func TestLoaderToleratesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/responses/balances.json":
			w.Write([]byte(`[{"question":"Cash on hand","answer":"100"}]`))
		case "/data/responses/sales.json":
			w.Write([]byte(`{broken`))
		case "/data/responses/reports.json":
			w.Write([]byte(`[{"question":"What is a fact?","answer":"ok"},{"question":"b","answer":"c"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	client := srv.Client()
	defer client.CloseIdleConnections()

	l := &Loader{BaseURL: srv.URL + "/", Path: "/data/responses", Client: client, Log: zap.NewNop()}
	ix := l.Load(context.Background())

	require.Equal(t, 2, ix.Len())
	counts := ix.Counts()
	assert.Equal(t, []Count{
		{ID: "balances", Title: "Saldos", Records: 1},
		{ID: "reports", Title: "Reportes", Records: 2},
	}, counts)

	groups := ix.Search("fact")
	require.Len(t, groups, 1)
	assert.Equal(t, "reports", groups[0].SectionID)
}

func TestLoaderURL(t *testing.T) {
	l := &Loader{BaseURL: "http://localhost:8000/", Path: "data/responses/"}
	assert.Equal(t, "http://localhost:8000/data/responses/sales.json", l.URL("sales"))
}

func TestNilIndex(t *testing.T) {
	var ix *Index
	assert.Nil(t, ix.Search("anything"))
	assert.Equal(t, 0, ix.Len())
}
