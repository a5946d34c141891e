package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio-io/alma-client/pkg/alma"
)

func TestAnalyticsClient_GetReport_Finished(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/reports", r.URL.Path)
		assert.Equal(t, "/shared/Reports/Fines", r.URL.Query().Get("path"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		assert.Equal(t, "true", r.URL.Query().Get("colNames"))
		assert.Contains(t, r.Header.Get("Accept"), "application/json")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"QueryResult":{
			"ResultXml":{
				"Schema":{"complexType":{"sequence":{"element":[
					{"@name":"Column0","@saw-sql:columnHeading":"Patron Group","@type":"xsd:string"},
					{"@name":"Column1","@saw-sql:columnHeading":"Fine Amount","@type":"xsd:double"}
				]}}},
				"rowset":{"Row":[
					{"Column0":"Student","Column1":12.5},
					{"Column0":"Faculty","Column1":3}
				]}
			},
			"IsFinished":"true"
		}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	report, err := client.Analytics().GetReport(context.Background(), "/shared/Reports/Fines", nil)
	require.NoError(t, err)
	assert.True(t, report.IsFinished)
	assert.Equal(t, "/shared/Reports/Fines", report.QueryPath)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Student", report.Rows[0]["Column0"])
	assert.Equal(t, "12.5", report.Rows[0]["Column1"])
	assert.Equal(t, "3", report.Rows[1]["Column1"])
	require.Len(t, report.Columns, 2)
	assert.Equal(t, "Patron Group", report.Columns[0].Name)
	assert.Equal(t, "xsd:double", report.Columns[1].DataType)
}

func TestAnalyticsClient_GetReport_PollsWithToken(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch call {
		case 1:
			assert.Equal(t, "/shared/Reports/Loans", r.URL.Query().Get("path"))
			assert.Empty(t, r.URL.Query().Get("token"))
			_, _ = w.Write([]byte(`{"QueryResult":{
				"ResultXml":{"rowset":{"Row":{"Column0":"row-1"}}},
				"ResumptionToken":"token-abc",
				"IsFinished":"false"
			}}`))
		default:
			assert.Empty(t, r.URL.Query().Get("path"))
			assert.Equal(t, "token-abc", r.URL.Query().Get("token"))
			_, _ = w.Write([]byte(`{"QueryResult":{
				"ResultXml":{"rowset":{"Row":{"Column0":"row-2"}}},
				"IsFinished":"true"
			}}`))
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	report, err := client.Analytics().GetReport(context.Background(), "/shared/Reports/Loans", nil)
	require.NoError(t, err)
	assert.True(t, report.IsFinished)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "row-1", report.Rows[0]["Column0"])
	assert.Equal(t, "row-2", report.Rows[1]["Column0"])
}

func TestAnalyticsClient_GetReport_BudgetExhaustedReturnsPartial(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"QueryResult":{
			"ResultXml":{"rowset":{"Row":{"Column0":"more"}}},
			"ResumptionToken":"token-abc",
			"IsFinished":"false"
		}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	report, err := client.Analytics().GetReport(context.Background(), "/shared/Reports/Loans", nil)
	require.NoError(t, err)
	assert.False(t, report.IsFinished)
	assert.Equal(t, "token-abc", report.ResumptionToken)
	// Initial fetch plus the configured poll budget.
	assert.Equal(t, int32(6), calls.Load())
	assert.Len(t, report.Rows, 6)
}

func TestAnalyticsClient_GetReport_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		cancel()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"QueryResult":{
			"ResultXml":{"rowset":{"Row":{"Column0":"row-1"}}},
			"ResumptionToken":"token-abc",
			"IsFinished":"false"
		}}`))
	}))
	defer server.Close()

	// A long poll interval so cancellation is observed before the next
	// follow-up fetch.
	client, err := New(&alma.Config{
		APIKey:       "k",
		BaseURL:      server.URL,
		PollInterval: time.Minute,
	})
	require.NoError(t, err)

	report, err := client.Analytics().GetReport(ctx, "/shared/Reports/Loans", nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, alma.IsTransport(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyticsClient_GetReport_XMLResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<QueryResult>
			<ResultXml>
				<rowset>
					<schema><complexType><sequence>
						<element name="Column0" columnHeading="Title" type="xsd:string"/>
					</sequence></complexType></schema>
					<Row><Column0>Dune</Column0></Row>
					<Row><Column0>Foundation</Column0></Row>
				</rowset>
			</ResultXml>
			<IsFinished>true</IsFinished>
		</QueryResult>`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	report, err := client.Analytics().GetReport(context.Background(), "/shared/Reports/Titles", nil)
	require.NoError(t, err)
	assert.True(t, report.IsFinished)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Dune", report.Rows[0]["Column0"])
	require.Len(t, report.Columns, 1)
	assert.Equal(t, "Title", report.Columns[0].Name)
}

func TestAnalyticsClient_GetReport_MissingIsFinished(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"QueryResult":{"ResultXml":{"rowset":{}}}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	report, err := client.Analytics().GetReport(context.Background(), "/shared/Reports/Broken", nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, alma.IsInvalidInput(err))
}

func TestAnalyticsClient_GetReport_Options(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "false", r.URL.Query().Get("colNames"))
		assert.Equal(t, "<sawx:expr/>", r.URL.Query().Get("filter"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"QueryResult":{"IsFinished":true}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	report, err := client.Analytics().GetReport(context.Background(), "/shared/Reports/Fines", &alma.ReportOptions{
		Limit:         25,
		Filter:        "<sawx:expr/>",
		NoColumnNames: true,
	})
	require.NoError(t, err)
	assert.True(t, report.IsFinished)
	assert.Empty(t, report.Rows)
}

func TestAnalyticsClient_GetReport_EmptyPath(t *testing.T) {
	client := NewTestClient("http://127.0.0.1:1")

	report, err := client.Analytics().GetReport(context.Background(), "", nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, alma.ErrReportPathRequired)
}

func TestAnalyticsClient_ListPaths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/paths", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"path":[
			"/shared/Reports",
			{"@path":"/shared/Alma","@type":"Folder","@name":"Alma"}
		]}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	paths, err := client.Analytics().ListPaths(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "/shared/Reports", paths[0].Path)
	assert.Equal(t, "/shared/Alma", paths[1].Path)
	assert.Equal(t, "Folder", paths[1].Type)
	assert.Equal(t, "Alma", paths[1].Name)
}

func TestAnalyticsClient_ListPaths_Folder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/paths/shared/Alma%20Reports", r.URL.EscapedPath())

		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<AnalyticsPathsResult>
			<path path="/shared/Alma Reports/Loans" type="Report" name="Loans"/>
		</AnalyticsPathsResult>`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	paths, err := client.Analytics().ListPaths(context.Background(), "/shared/Alma Reports")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "/shared/Alma Reports/Loans", paths[0].Path)
	assert.Equal(t, "Report", paths[0].Type)
}
