// Package notices renders the rich-text region of a town page as Markdown
// for terminal display.
package notices

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/curbside-tools/lexington/internal/fetch"
	urlutil "github.com/curbside-tools/lexington/internal/utils/url"
	"github.com/curbside-tools/lexington/pkg/models"
)

// Render fetches the page and converts its rich-text containers to
// Markdown. Relative links are resolved against the page URL so they stay
// clickable in the terminal.
func Render(ctx context.Context, f *fetch.Fetcher, pageURL string) (string, error) {
	doc, err := f.Document(ctx, models.FetchOptions{URL: pageURL})
	if err != nil {
		return "", err
	}

	containers := doc.Find("div.fr-view")
	if containers.Length() == 0 {
		return "", fmt.Errorf("no rich-text content found at %s", pageURL)
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}

			resolved := urlutil.ResolveURL(pageURL, href)
			str := fmt.Sprintf("[%s](%s)", selec.Text(), resolved)
			return &str
		},
	})

	var sections []string
	var convertErr error
	containers.Each(func(_ int, sel *goquery.Selection) {
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			convertErr = err
			return
		}
		section, err := converter.ConvertString(html)
		if err != nil {
			convertErr = err
			return
		}
		if section = strings.TrimSpace(section); section != "" {
			sections = append(sections, section)
		}
	})
	if convertErr != nil {
		return "", convertErr
	}

	return strings.Join(sections, "\n\n"), nil
}
