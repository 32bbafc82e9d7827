package pipeline

import "strings"

// CSSInjector defines the contract for appending CSS to an assembled page.
type CSSInjector interface {
	InjectCSS(htmlContent, cssContent string) string
}

// CSSInjection inserts user CSS as a <style> block after the page styles,
// so it wins the cascade. Works on assembled pages, not fragments.
type CSSInjection struct{}

// Compile-time interface check.
var _ CSSInjector = (*CSSInjection)(nil)

// InjectCSS inserts a <style> block into HTML content.
// Tries before </head> first, then after <body>, then prepends.
// CSS is escaped so it cannot close the style tag early.
func (s *CSSInjection) InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}
	return injectBlock(htmlContent, "<style>"+escapeCloseTag(cssContent)+"</style>")
}

// InjectScript inserts a <script> block before </body>, falling back to
// appending at the end. The preview server uses it for the reload hook.
func InjectScript(htmlContent, scriptContent string) string {
	if scriptContent == "" {
		return htmlContent
	}

	block := "<script>" + escapeCloseTag(scriptContent) + "</script>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</body>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}
	return htmlContent + block
}

// injectBlock places a block in head position: before </head>, after the
// opening <body> tag, or prepended when neither exists.
func injectBlock(htmlContent, block string) string {
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + block + htmlContent[insertPos:]
		}
	}

	return block + htmlContent
}

// escapeCloseTag escapes </ sequences that would close the enclosing
// style or script tag prematurely.
func escapeCloseTag(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}
