// Package translation calls the external translation API, memoising results
// in a bounded LRU cache keyed by "text:lang".
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/craftroots/artisan-api/config"
)

// Supported target language codes. English is the source language, so
// requesting it is an identity operation.
var supported = map[string]bool{
	"en": true,
	"hi": true,
	"ta": true,
}

// DefaultCacheSize bounds the in-process translation cache.
const DefaultCacheSize = 1024

var ErrUnsupportedLanguage = errors.New("unsupported target language")

type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
	cache  *lru.Cache[string, string]
}

func NewClient(cfg config.TranslateConfig) *Client {
	return newClient(cfg, DefaultCacheSize)
}

func newClient(cfg config.TranslateConfig, cacheSize int) *Client {
	cache, _ := lru.New[string, string](cacheSize)
	return &Client{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}
}

// Supported reports whether lang is a valid translation target.
func Supported(lang string) bool {
	return supported[lang]
}

// Translate returns text in the target language. A non-nil error means the
// upstream call failed and the source text came back unchanged; callers log
// it and keep going.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	if !Supported(target) {
		return text, ErrUnsupportedLanguage
	}
	if target == "en" {
		return text, nil
	}

	key := text + ":" + target
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	translations, err := c.call(ctx, []string{text}, target)
	if err != nil || len(translations) == 0 {
		return text, err
	}

	c.cache.Add(key, translations[0])
	return translations[0], nil
}

// TranslateBatch translates several texts in one upstream call. Cache misses
// only; results are cached individually.
func (c *Client) TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error) {
	if !Supported(target) {
		return texts, ErrUnsupportedLanguage
	}
	if target == "en" {
		return texts, nil
	}

	results := make([]string, len(texts))
	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if cached, ok := c.cache.Get(text + ":" + target); ok {
			results[i] = cached
		} else {
			missing = append(missing, text)
			missingIdx = append(missingIdx, i)
		}
	}
	if len(missing) == 0 {
		return results, nil
	}

	translations, err := c.call(ctx, missing, target)
	if err != nil || len(translations) != len(missing) {
		copy(results, texts)
		return results, err
	}
	for i, translated := range translations {
		idx := missingIdx[i]
		results[idx] = translated
		c.cache.Add(texts[idx]+":"+target, translated)
	}
	return results, nil
}

func (c *Client) call(ctx context.Context, texts []string, target string) ([]string, error) {
	payload, err := json.Marshal(map[string]any{
		"q":      texts,
		"source": "en",
		"target": target,
		"format": "text",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("translation api: status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	translations := make([]string, 0, len(body.Data.Translations))
	for _, t := range body.Data.Translations {
		translations = append(translations, t.TranslatedText)
	}
	return translations, nil
}
