package ndl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `<?xml version="1.0" encoding="UTF-8"?>
<searchRetrieveResponse xmlns="http://www.loc.gov/zing/srw/">
  <numberOfRecords>1</numberOfRecords>
  <records>
    <record>
      <recordData>
        <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
                 xmlns:dcndl="http://ndl.go.jp/dcndl/terms/"
                 xmlns:dc="http://purl.org/dc/elements/1.1/"
                 xmlns:dcterms="http://purl.org/dc/terms/"
                 xmlns:foaf="http://xmlns.com/foaf/0.1/">
          <dcndl:BibResource>
            <dc:title>
              <rdf:Description>
                <rdf:value>音楽教育史</rdf:value>
              </rdf:Description>
            </dc:title>
            <dcterms:creator>
              <foaf:Agent>
                <foaf:name>高橋, 太郎, 1950-</foaf:name>
                <dcndl:transcription>タカハシ, タロウ, 1950-</dcndl:transcription>
              </foaf:Agent>
            </dcterms:creator>
            <dcterms:publisher>
              <foaf:Agent>
                <foaf:name>音楽之友社</foaf:name>
                <dcndl:location>東京</dcndl:location>
              </foaf:Agent>
            </dcterms:publisher>
            <dcterms:issued>1996.4</dcterms:issued>
          </dcndl:BibResource>
        </rdf:RDF>
      </recordData>
    </record>
  </records>
</searchRetrieveResponse>`

const emptyResponse = `<?xml version="1.0" encoding="UTF-8"?>
<searchRetrieveResponse xmlns="http://www.loc.gov/zing/srw/">
  <numberOfRecords>0</numberOfRecords>
  <records/>
</searchRetrieveResponse>`

func TestLookupISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "searchRetrieve", q.Get("operation"))
		assert.Equal(t, "dcndl", q.Get("recordSchema"))
		assert.Equal(t, `isbn=9784276110168`, q.Get("query"))
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	payload, err := client.LookupISBN(context.Background(), "978-4-276-11016-8")
	require.NoError(t, err)

	fields := payload.GetFields()
	assert.Equal(t, "音楽教育史", fields["title"].GetStringValue())
	assert.Equal(t, "音楽之友社", fields["publisher"].GetStringValue())
	assert.Equal(t, "東京", fields["publisherLocation"].GetStringValue())
	assert.Equal(t, "1996.4", fields["issued"].GetStringValue())
	assert.Equal(t, "9784276110168", fields["isbn"].GetStringValue())

	creators := fields["creators"].GetListValue().GetValues()
	require.Len(t, creators, 1)
	creator := creators[0].GetStructValue().GetFields()
	assert.Equal(t, "高橋, 太郎", creator["name"].GetStringValue())
	assert.Equal(t, "タカハシ タロウ", creator["reading"].GetStringValue())
}

func TestLookupISBNNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(emptyResponse))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := client.LookupISBN(context.Background(), "9999999999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupISBNEmptyInput(t *testing.T) {
	client := NewClient()
	_, err := client.LookupISBN(context.Background(), "  ")
	assert.Error(t, err)
}

func TestCleanAgentName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"高橋, 太郎, 1950-", "高橋, 太郎"},
		{"高橋, 太郎, 19202010", "高橋, 太郎"},
		{"音楽之友社", "音楽之友社"},
		{"Grout, Donald Jay, 1902-1987", "Grout, Donald Jay"},
	}
	for _, tt := range tests {
		if got := cleanAgentName(tt.in); got != tt.want {
			t.Errorf("cleanAgentName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitCreatorList(t *testing.T) {
	got := splitCreatorList("高橋太郎、鈴木花子著")
	assert.Equal(t, []string{"高橋太郎", "鈴木花子"}, got)
}
