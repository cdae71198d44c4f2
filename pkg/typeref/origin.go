package typeref

// GlobalIDPrefix namespaces identifiers of ambient types. Derived ids never
// collide with library-issued ids by construction, so globals skip the
// registry entirely.
const GlobalIDPrefix = "global::"

// OriginKind enumerates where a type name's declaration lives.
type OriginKind int

const (
	// OriginImport: the name is imported; its declaration lives in another
	// module reached through the import's export chain.
	OriginImport OriginKind = iota
	// OriginLocal: the name is declared and exported in the current file.
	OriginLocal
	// OriginGlobal: the name is ambient: visible without import or local
	// export. A genuinely undefined name is indistinguishable from an
	// ambient type at this layer; diagnosing that is the checker's job.
	OriginGlobal
)

// String returns the kind's wire name.
func (k OriginKind) String() string {
	switch k {
	case OriginImport:
		return "import"
	case OriginLocal:
		return "local"
	case OriginGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Origin is the result of resolving one type name.
type Origin struct {
	Kind OriginKind

	// SpecifierPath is the import specifier as written in the referencing
	// file (Import only). It is deliberately not the resolved home path;
	// consumers that need the home module must re-resolve it.
	SpecifierPath string

	// FilePath is the declaring file (Local only).
	FilePath string

	// ID is the type library identifier, or GlobalIDPrefix + name for
	// ambient types.
	ID string
}

// Library is the external type registry contract. Add must be idempotent:
// repeated calls describing the same declared type return the same id, and
// distinct declared types never collapse to one id even when structurally
// identical. Implementations must be safe for concurrent use; two
// resolutions racing on the same type must not mint two ids.
type Library interface {
	Add(t TypeHandle, name, path string) (string, error)
}
