package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/BenTyson/calcverse/internal/registry"
)

var categoryTitles = []struct {
	category registry.Category
	title    string
}{
	{registry.CategoryGig, "Gig Economy"},
	{registry.CategoryFreelancer, "Freelancers"},
	{registry.CategoryCreator, "Creators"},
	{registry.CategoryTax, "Taxes"},
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>calcverse</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #0d1117; }
  h1 { margin-bottom: 0.25rem; }
  h2 { border-bottom: 1px solid #b8a898; padding-bottom: 0.25rem; margin-top: 2rem; }
  ul { list-style: none; padding: 0; }
  li { margin: 0.75rem 0; }
  .links a { font-size: 0.85rem; margin-right: 0.75rem; color: #2c6e49; }
  .quick { font-size: 0.75rem; background: #e8e0cc; padding: 0.1rem 0.4rem; border-radius: 0.25rem; }
  footer { margin-top: 3rem; font-size: 0.8rem; color: #6b5e4e; }
</style>
</head>
<body>
<h1>calcverse</h1>
<p>Financial calculators for gig workers, freelancers and creators.</p>
`

// indexPage lists every calculator grouped by category.
func indexPage(calculators []registry.Info, version string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		for _, group := range categoryTitles {
			var items []registry.Info
			for _, info := range calculators {
				if info.Category == group.category {
					items = append(items, info)
				}
			}
			if len(items) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n", templ.EscapeString(group.title)); err != nil {
				return err
			}
			for _, info := range items {
				if err := calculatorItem(info).Render(ctx, w); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</ul>\n"); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "<footer>calcverse %s</footer>\n</body>\n</html>\n", templ.EscapeString(version))
		return err
	})
}

func calculatorItem(info registry.Info) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		slug := templ.EscapeString(info.Slug)
		quick := ""
		if info.QuickMode {
			quick = ` <span class="quick">quick mode</span>`
		}
		_, err := fmt.Fprintf(w,
			`<li><strong>%s</strong>%s<br>%s<br><span class="links"><a href="/api/calculators/%s">results</a><a href="/api/calculators/%s/defaults">defaults</a><a href="/api/calculators/%s/pdf">pdf</a></span></li>`+"\n",
			templ.EscapeString(info.Name), quick, templ.EscapeString(info.Description), slug, slug, slug)
		return err
	})
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return c.Render(r.Context(), w)
}
