package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ajaybhatia/xync-server/internal/models"
	"github.com/sirupsen/logrus"
)

const previewUserAgent = "Mozilla/5.0 (compatible; XyncBot/1.0)"

// PreviewService fetches a page and scrapes Open Graph metadata for the
// bookmark preview. Failures are never fatal: a page that cannot be
// fetched or parsed simply yields empty fields.
type PreviewService struct {
	client *http.Client
}

func NewPreviewService() *PreviewService {
	return &PreviewService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *PreviewService) FetchPreview(ctx context.Context, rawURL string) *models.BookmarkPreview {
	preview := &models.BookmarkPreview{
		Favicon: faviconURL(rawURL),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return preview
	}
	req.Header.Set("User-Agent", previewUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", rawURL).Debug("preview fetch failed")
		return preview
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return preview
	}

	preview.Title = extractTitle(doc)
	preview.Description = extractDescription(doc)
	preview.Image = extractImage(doc, rawURL)

	return preview
}

func extractTitle(doc *goquery.Document) *string {
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && content != "" {
		return &content
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return &title
	}
	return nil
}

func extractDescription(doc *goquery.Document) *string {
	if content, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && content != "" {
		return &content
	}
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && content != "" {
		return &content
	}
	return nil
}

func extractImage(doc *goquery.Document, baseURL string) *string {
	content, ok := doc.Find(`meta[property="og:image"]`).Attr("content")
	if !ok || content == "" {
		return nil
	}
	return resolveURL(baseURL, content)
}

func faviconURL(rawURL string) *string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil
	}
	favicon := fmt.Sprintf("%s://%s/favicon.ico", parsed.Scheme, parsed.Host)
	return &favicon
}

func resolveURL(base, ref string) *string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return &ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return nil
	}
	resolved := baseURL.ResolveReference(refURL).String()
	return &resolved
}
