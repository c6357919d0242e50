package cinii

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "@graph": [
    {
      "items": [
        {
          "@id": "https://cir.nii.ac.jp/crid/1390001205767472640",
          "title": "戦後の音楽教育",
          "dc:creator": [{"@value": "鈴木花子"}, {"@value": "田中一郎"}],
          "prism:publicationName": "音楽教育学",
          "prism:volume": "28",
          "prism:number": 2,
          "prism:startingPage": "45",
          "prism:endingPage": "58",
          "prism:publicationDate": "1998-03-01"
        },
        {
          "title": "リズム教育の方法",
          "dc:creator": "山田太郎",
          "prism:publicationName": "教育音楽",
          "prism:startingPage": "12"
        }
      ]
    }
  ]
}`

func TestSearchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "戦後の音楽教育", q.Get("title"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "test-app", q.Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithAppID("test-app"))
	payloads, err := client.SearchTitle(context.Background(), "戦後の音楽教育")
	require.NoError(t, err)
	require.Len(t, payloads, 2)

	first := payloads[0].GetFields()
	assert.Equal(t, "戦後の音楽教育", first["title"].GetStringValue())
	assert.Equal(t, "音楽教育学", first["journal"].GetStringValue())
	assert.Equal(t, "28", first["volume"].GetStringValue())
	assert.Equal(t, "2", first["issue"].GetStringValue())
	assert.Equal(t, "45-58", first["pages"].GetStringValue())
	assert.Equal(t, "1998-03-01", first["year"].GetStringValue())
	assert.Equal(t, "https://cir.nii.ac.jp/crid/1390001205767472640", first["link"].GetStringValue())

	authors := first["authors"].GetListValue().GetValues()
	require.Len(t, authors, 2)
	assert.Equal(t, "鈴木花子", authors[0].GetStringValue())

	second := payloads[1].GetFields()
	assert.Equal(t, "12", second["pages"].GetStringValue())
	secondAuthors := second["authors"].GetListValue().GetValues()
	require.Len(t, secondAuthors, 1)
	assert.Equal(t, "山田太郎", secondAuthors[0].GetStringValue())
}

func TestSearchTitleNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"@graph": []}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	payloads, err := client.SearchTitle(context.Background(), "存在しない論文")
	require.NoError(t, err)
	assert.Empty(t, payloads)
}

func TestSearchTitleEmptyQuery(t *testing.T) {
	client := NewClient()
	_, err := client.SearchTitle(context.Background(), "   ")
	assert.Error(t, err)
}
