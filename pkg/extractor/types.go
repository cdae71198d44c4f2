package extractor

// Metadata is the per-file extraction result consumed by the lowering and
// code-generation stages.
type Metadata struct {
	FilePath string `json:"filePath"`
	Language string `json:"language"`

	Imports []ImportMeta `json:"imports,omitempty"`
	Exports []ExportMeta `json:"exports,omitempty"`

	// Decorators holds statically decoded decorator configurations.
	Decorators []DecoratorMeta `json:"decorators,omitempty"`

	// TypeRefs maps each distinct referenced type name to its resolved
	// origin. Folded from the reference list in document order, so a name
	// referenced twice keeps its last occurrence.
	TypeRefs []TypeRefMeta `json:"typeRefs,omitempty"`
}

// ImportMeta describes one imported binding.
type ImportMeta struct {
	Specifier    string `json:"specifier"`
	LocalName    string `json:"localName"`
	ImportedName string `json:"importedName"`
	Kind         string `json:"kind"`
	TypeOnly     bool   `json:"typeOnly,omitempty"`
}

// ExportMeta describes one exported name.
type ExportMeta struct {
	Name      string `json:"name,omitempty"`
	LocalName string `json:"localName,omitempty"`
	Specifier string `json:"specifier,omitempty"`
	Wildcard  bool   `json:"wildcard,omitempty"`
	DeclKind  string `json:"declKind,omitempty"`
}

// DecoratorMeta is one decorator call site with its decoded configuration.
type DecoratorMeta struct {
	// Name is the decorator callee as written (Component, core.Component).
	Name string `json:"name"`

	// Target is the decorated declaration's name, empty when anonymous.
	Target string `json:"target,omitempty"`

	// Args holds the decoded call arguments in order. Arguments outside
	// the literal grammar appear as "<expression>".
	Args []any `json:"args,omitempty"`
}

// TypeRefMeta is one resolved type reference.
type TypeRefMeta struct {
	Name string `json:"name"`

	// Origin is "import", "local", or "global".
	Origin string `json:"origin"`

	// Specifier is the import specifier as written (import origin only).
	Specifier string `json:"specifier,omitempty"`

	// FilePath is the declaring file (local origin only).
	FilePath string `json:"filePath,omitempty"`

	// ID is the type library identifier.
	ID string `json:"id"`

	// Display is the oracle's display string for the type.
	Display string `json:"display,omitempty"`
}
