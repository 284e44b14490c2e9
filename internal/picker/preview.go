package picker

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/keisukeshimizu/wt/internal/style"
)

// highlightDiff colors a unified diff with the palette of st. Plain styles
// and highlighting failures return the diff unchanged.
func highlightDiff(diff string, st *style.Style) string {
	if diff == "" || !st.Enabled() {
		return diff
	}

	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	theme := styles.Get("catppuccin-" + st.Flavor().Name())
	if theme == nil {
		theme = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, diff)
	if err != nil {
		return diff
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, theme, iterator); err != nil {
		return diff
	}
	return buf.String()
}
