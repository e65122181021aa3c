package validator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsMissingAPIKey(t *testing.T) {
	_, err := New(context.Background(), nil, KindMerriamWebster, "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(context.Background(), nil, KindWordnik, "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewRejectsEmptyCustomURL(t *testing.T) {
	_, err := New(context.Background(), nil, KindCustom, "", "")
	assert.ErrorIs(t, err, ErrInvalidCustomValidator)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(context.Background(), nil, Kind("made-up"), "", "")
	assert.ErrorIs(t, err, ErrUnknownValidatorKind)
}

func TestParseKind(t *testing.T) {
	_, ok := ParseKind("free-dictionary")
	assert.True(t, ok)
	_, ok = ParseKind("bogus")
	assert.False(t, ok)
}

func freeDictionaryBody(definition string) string {
	payload := []map[string]any{
		{
			"meanings": []map[string]any{
				{"definitions": []map[string]any{{"definition": definition}}},
			},
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func TestFreeDictionaryLookupFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(freeDictionaryBody("a greeting")))
	}))
	defer srv.Close()

	v := &freeDictionaryVariant{apiBaseURL: srv.URL}
	entry, err := v.Lookup(context.Background(), http.DefaultClient, "hello")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "hello", entry.Word)
	assert.Equal(t, "a greeting", entry.Definition)
	assert.Equal(t, "https://en.wiktionary.org/wiki/hello", entry.URL)
}

func TestFreeDictionaryLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	v := &freeDictionaryVariant{apiBaseURL: srv.URL}
	entry, err := v.Lookup(context.Background(), http.DefaultClient, "zzzzz")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFreeDictionaryLookupMissingDefinitionFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"meanings":[]}]`))
	}))
	defer srv.Close()

	v := &freeDictionaryVariant{apiBaseURL: srv.URL}
	entry, err := v.Lookup(context.Background(), http.DefaultClient, "x")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, noDefinitionAvailable, entry.Definition)
}

func TestMerriamWebsterRejectsSuggestionShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := json.Marshal([]string{"color", "colour"})
		w.Write(b)
	}))
	defer srv.Close()

	v := &merriamWebsterVariant{apiKey: "key", apiBaseURL: srv.URL}
	entry, err := v.Lookup(context.Background(), http.DefaultClient, "collor")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMerriamWebsterAcceptsObjectEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := json.Marshal([]map[string]any{{"shortdef": []string{"a color"}}})
		w.Write(b)
	}))
	defer srv.Close()

	v := &merriamWebsterVariant{apiKey: "key", apiBaseURL: srv.URL}
	entry, err := v.Lookup(context.Background(), http.DefaultClient, "color")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "a color", entry.Definition)
}

func TestWordnikLookupFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := json.Marshal([]map[string]string{{"text": "a definition"}})
		w.Write(b)
	}))
	defer srv.Close()

	v := &wordnikVariant{apiKey: "key", apiBaseURL: srv.URL}
	entry, err := v.Lookup(context.Background(), http.DefaultClient, "word")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "a definition", entry.Definition)
}

func TestCustomValidatorProbeRejectsBadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	_, err := New(context.Background(), http.DefaultClient, KindCustom, "", srv.URL)
	assert.ErrorIs(t, err, ErrInvalidCustomValidator)
}

func TestCustomValidatorProbeAccepts404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(context.Background(), http.DefaultClient, KindCustom, "", srv.URL)
	assert.NoError(t, err)
}

func TestCustomValidatorProbeAcceptsFreeDictionaryShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(freeDictionaryBody("anything")))
	}))
	defer srv.Close()

	_, err := New(context.Background(), http.DefaultClient, KindCustom, "", srv.URL)
	assert.NoError(t, err)
}

func TestNewWithoutClientSkipsProbe(t *testing.T) {
	v, err := New(context.Background(), nil, KindCustom, "", "http://127.0.0.1:1")
	require.NoError(t, err)
	assert.Equal(t, string(KindCustom), v.Name())
}
