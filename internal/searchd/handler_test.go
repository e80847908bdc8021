package searchd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicesearch/internal/catalog"
	"invoicesearch/internal/domain"
	"invoicesearch/internal/searchclient"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	c, err := catalog.Parse([]byte(`
tables:
  customers:
    - id: 1
      name: Alpha
      taxid: B1
    - id: 2
      name: Beta
      taxid: B2
`))
	require.NoError(t, err)
	return NewRouter(c)
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSearchReturnsMatchingRows(t *testing.T) {
	rec := post(newTestRouter(t), `{"table":"customers","field":"name","value":"alp"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result []map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Result, 1)
	assert.Equal(t, "Alpha", resp.Result[0]["name"])
	assert.Equal(t, float64(1), resp.Result[0]["id"])
}

func TestSearchUnknownFieldReturnsEmptyResult(t *testing.T) {
	rec := post(newTestRouter(t), `{"table":"customers","field":"email","value":"a"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":[]}`, rec.Body.String())
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
		want string
	}{
		{"malformed", `{"table":`, http.StatusBadRequest, msgInvalidRequest},
		{"missing value", `{"table":"customers","field":"name"}`, http.StatusBadRequest, msgValidationFailed},
		{"empty table", `{"table":"","field":"name","value":"a"}`, http.StatusBadRequest, msgValidationFailed},
		{"unknown table", `{"table":"suppliers","field":"name","value":"a"}`, http.StatusNotFound, msgUnknownTable},
	}
	r := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(r, tt.body)
			assert.Equal(t, tt.code, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

func TestClientAgainstServer(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	client := searchclient.New(srv.URL + "/search")
	rows, err := client.Search(context.Background(), domain.SearchRequest{Table: "customers", Field: "taxid", Value: "b"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].Get("name"))
	assert.Equal(t, "2", rows[1].Get("id"))

	_, err = client.Search(context.Background(), domain.SearchRequest{Table: "nope", Field: "name", Value: "x"})
	assert.ErrorIs(t, err, searchclient.ErrUnexpectedStatus)
}
