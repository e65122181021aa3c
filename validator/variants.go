package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Variant encapsulates one external dictionary service: how to look a
// word up and how to turn its response into a WordEntry or a "not a word"
// verdict. Lookup returns (nil, nil) for a confirmed non-word (404, or a
// recognized "unknown word" response shape); it returns a non-nil error
// only for a transport failure, an unexpected HTTP status, or a parse
// failure, which the pipeline also treats as not-validated.
type Variant interface {
	Name() string
	Lookup(ctx context.Context, client *http.Client, word string) (*WordEntry, error)
}

const (
	defaultFreeDictionaryBase = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultMerriamWebsterBase = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"
	defaultWordnikBase        = "https://api.wordnik.com/v4/word.json"
)

// New constructs the Variant named by kind. merriam-webster and wordnik
// reject construction with ErrMissingAPIKey if apiKey is empty; custom
// rejects with ErrInvalidCustomValidator if customURL is empty. When
// client is non-nil, a custom variant is additionally probed with the
// fixed word "test" before being accepted — see probeCustom.
func New(ctx context.Context, client *http.Client, kind Kind, apiKey, customURL string) (Variant, error) {
	switch kind {
	case KindFreeDictionary:
		return &freeDictionaryVariant{apiBaseURL: defaultFreeDictionaryBase}, nil
	case KindMerriamWebster:
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return &merriamWebsterVariant{apiKey: apiKey, apiBaseURL: defaultMerriamWebsterBase}, nil
	case KindWordnik:
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return &wordnikVariant{apiKey: apiKey, apiBaseURL: defaultWordnikBase}, nil
	case KindCustom:
		if customURL == "" {
			return nil, ErrInvalidCustomValidator
		}
		if client != nil {
			if err := probeCustom(ctx, client, customURL); err != nil {
				return nil, err
			}
		}
		return &customVariant{baseURL: customURL}, nil
	default:
		return nil, ErrUnknownValidatorKind
	}
}

// probeCustom issues a single GET against baseURL/test and accepts the
// custom validator iff the response is a 404 or a free-dictionary-shaped
// 2xx body. Probing is hardening, not part of the core algorithm — a
// caller may skip it by passing a nil client to New.
func probeCustom(ctx context.Context, client *http.Client, baseURL string) error {
	resp, err := doGet(ctx, client, baseURL+"/test")
	if err != nil {
		return ErrInvalidCustomValidator
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ErrInvalidCustomValidator
	}
	var entries []freeDictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return ErrInvalidCustomValidator
	}
	return nil
}

func doGet(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

const noDefinitionAvailable = "No definition available"

// --- free-dictionary ---

type freeDictionaryEntry struct {
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

type freeDictionaryVariant struct {
	apiBaseURL string
}

func (v *freeDictionaryVariant) Name() string { return string(KindFreeDictionary) }

func (v *freeDictionaryVariant) Lookup(ctx context.Context, client *http.Client, word string) (*WordEntry, error) {
	resp, err := doGet(ctx, client, fmt.Sprintf("%s/%s", v.apiBaseURL, url.PathEscape(word)))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validator: free-dictionary returned status %d", resp.StatusCode)
	}

	var entries []freeDictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	definition := noDefinitionAvailable
	if len(entries[0].Meanings) > 0 && len(entries[0].Meanings[0].Definitions) > 0 {
		definition = entries[0].Meanings[0].Definitions[0].Definition
	}

	return &WordEntry{
		Word:       word,
		Definition: definition,
		URL:        fmt.Sprintf("https://en.wiktionary.org/wiki/%s", word),
	}, nil
}

// --- merriam-webster ---

type merriamWebsterEntry struct {
	Shortdef []string `json:"shortdef"`
}

type merriamWebsterVariant struct {
	apiKey     string
	apiBaseURL string
}

func (v *merriamWebsterVariant) Name() string { return string(KindMerriamWebster) }

func (v *merriamWebsterVariant) Lookup(ctx context.Context, client *http.Client, word string) (*WordEntry, error) {
	reqURL := fmt.Sprintf("%s/%s?key=%s", v.apiBaseURL, url.PathEscape(word), url.QueryEscape(v.apiKey))
	resp, err := doGet(ctx, client, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validator: merriam-webster returned status %d", resp.StatusCode)
	}

	// An array whose first element is a string (rather than an object)
	// means "did you mean ..." suggestions — the word was not found.
	// Unmarshaling that shape into []merriamWebsterEntry fails, which is
	// exactly the "not found" signal we want.
	var entries []merriamWebsterEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, nil
	}
	if len(entries) == 0 {
		return nil, nil
	}

	definition := noDefinitionAvailable
	if len(entries[0].Shortdef) > 0 {
		definition = entries[0].Shortdef[0]
	}

	return &WordEntry{
		Word:       word,
		Definition: definition,
		URL:        fmt.Sprintf("https://www.merriam-webster.com/dictionary/%s", word),
	}, nil
}

// --- wordnik ---

type wordnikEntry struct {
	Text string `json:"text"`
}

type wordnikVariant struct {
	apiKey     string
	apiBaseURL string
}

func (v *wordnikVariant) Name() string { return string(KindWordnik) }

func (v *wordnikVariant) Lookup(ctx context.Context, client *http.Client, word string) (*WordEntry, error) {
	reqURL := fmt.Sprintf("%s/%s/definitions?api_key=%s", v.apiBaseURL, url.PathEscape(word), url.QueryEscape(v.apiKey))
	resp, err := doGet(ctx, client, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validator: wordnik returned status %d", resp.StatusCode)
	}

	var entries []wordnikEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	definition := noDefinitionAvailable
	if entries[0].Text != "" {
		definition = entries[0].Text
	}

	return &WordEntry{
		Word:       word,
		Definition: definition,
		URL:        fmt.Sprintf("https://www.wordnik.com/words/%s", word),
	}, nil
}

// --- custom ---

type customVariant struct {
	baseURL string
}

func (v *customVariant) Name() string { return string(KindCustom) }

func (v *customVariant) Lookup(ctx context.Context, client *http.Client, word string) (*WordEntry, error) {
	resp, err := doGet(ctx, client, fmt.Sprintf("%s/%s", v.baseURL, url.PathEscape(word)))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validator: custom validator returned status %d", resp.StatusCode)
	}

	var entries []freeDictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	definition := noDefinitionAvailable
	if len(entries[0].Meanings) > 0 && len(entries[0].Meanings[0].Definitions) > 0 {
		definition = entries[0].Meanings[0].Definitions[0].Definition
	}

	return &WordEntry{
		Word:       word,
		Definition: definition,
		URL:        fmt.Sprintf("%s/%s", v.baseURL, word),
	}, nil
}
