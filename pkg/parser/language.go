package parser

import (
	"path/filepath"
	"strings"
)

// Language represents a source language the extractor can parse.
type Language int

const (
	// LanguageTypeScript represents TypeScript (.ts, .mts, .cts, .tsx files).
	LanguageTypeScript Language = iota
	// LanguageJavaScript represents JavaScript (.js, .jsx, .mjs, .cjs files).
	LanguageJavaScript
	// LanguageUnknown represents an unsupported language.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the source language from a file path.
// Returns LanguageUnknown if the file extension is not recognized.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsTSXFile reports whether the file needs the TSX grammar variant.
// TSX files use the TypeScript grammar with JSX support enabled.
func IsTSXFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".tsx"
}

// SourceExtensions returns the resolution candidates for a language, in
// probe order. Used by module resolution when an import specifier omits
// the extension.
func SourceExtensions(lang Language) []string {
	switch lang {
	case LanguageTypeScript:
		return []string{".ts", ".tsx", ".d.ts"}
	case LanguageJavaScript:
		return []string{".js", ".jsx", ".mjs", ".cjs"}
	default:
		return nil
	}
}
