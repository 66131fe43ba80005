package diff

import "strings"

// languageByExtension maps lower-cased file extensions to language tags
// understood by syntax highlighters.
var languageByExtension = map[string]string{
	"go":    "go",
	"ts":    "typescript",
	"tsx":   "typescript",
	"js":    "javascript",
	"jsx":   "javascript",
	"mjs":   "javascript",
	"py":    "python",
	"rb":    "ruby",
	"rs":    "rust",
	"java":  "java",
	"kt":    "kotlin",
	"swift": "swift",
	"c":     "c",
	"h":     "c",
	"cc":    "cpp",
	"cpp":   "cpp",
	"hpp":   "cpp",
	"cs":    "csharp",
	"php":   "php",
	"css":   "css",
	"scss":  "scss",
	"html":  "html",
	"xml":   "xml",
	"json":  "json",
	"yaml":  "yaml",
	"yml":   "yaml",
	"toml":  "toml",
	"md":    "markdown",
	"sh":    "bash",
	"bash":  "bash",
	"zsh":   "bash",
	"sql":   "sql",
	"proto": "protobuf",
	"txt":   "text",
}

// DetectLanguage returns a best-effort language tag for syntax
// highlighting, derived from the path's extension. Unknown and missing
// extensions map to "text". Total - never fails.
func DetectLanguage(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return "text"
	}
	if lang, ok := languageByExtension[strings.ToLower(path[idx+1:])]; ok {
		return lang
	}
	return "text"
}
