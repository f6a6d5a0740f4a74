package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPreview_OpenGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<title>Fallback Title</title>
			<meta property="og:title" content="OG Title">
			<meta property="og:description" content="OG description">
			<meta property="og:image" content="/images/cover.png">
			<meta name="description" content="Meta description">
		</head><body></body></html>`)
	}))
	defer server.Close()

	preview := NewPreviewService().FetchPreview(context.Background(), server.URL)

	require.NotNil(t, preview.Title)
	assert.Equal(t, "OG Title", *preview.Title)

	require.NotNil(t, preview.Description)
	assert.Equal(t, "OG description", *preview.Description)

	require.NotNil(t, preview.Image)
	assert.Equal(t, server.URL+"/images/cover.png", *preview.Image)

	require.NotNil(t, preview.Favicon)
	assert.Equal(t, server.URL+"/favicon.ico", *preview.Favicon)
}

func TestFetchPreview_FallbackTitleAndDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<title> Plain Title </title>
			<meta name="description" content="Meta description">
		</head><body></body></html>`)
	}))
	defer server.Close()

	preview := NewPreviewService().FetchPreview(context.Background(), server.URL)

	require.NotNil(t, preview.Title)
	assert.Equal(t, "Plain Title", *preview.Title)

	require.NotNil(t, preview.Description)
	assert.Equal(t, "Meta description", *preview.Description)

	assert.Nil(t, preview.Image)
}

func TestFetchPreview_AbsoluteImageURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<meta property="og:image" content="https://cdn.example.com/cover.png">
		</head></html>`)
	}))
	defer server.Close()

	preview := NewPreviewService().FetchPreview(context.Background(), server.URL)

	require.NotNil(t, preview.Image)
	assert.Equal(t, "https://cdn.example.com/cover.png", *preview.Image)
}

func TestFetchPreview_UnreachableHost(t *testing.T) {
	// Fetch failures are non-fatal: empty fields, derived favicon.
	preview := NewPreviewService().FetchPreview(context.Background(), "http://127.0.0.1:1/nope")

	assert.Nil(t, preview.Title)
	assert.Nil(t, preview.Description)
	assert.Nil(t, preview.Image)
	require.NotNil(t, preview.Favicon)
	assert.Equal(t, "http://127.0.0.1:1/favicon.ico", *preview.Favicon)
}
