package modules

// JSQueries contains tree-sitter query patterns for JavaScript import and
// export extraction. Same capture vocabulary as TSQueries minus the
// TypeScript-only declaration forms (interfaces, type aliases, enums).
const JSQueries = `
; ===========================================================================
; IMPORT STATEMENTS
; ===========================================================================

(import_statement
  source: (string (string_fragment) @import.source)
)

(import_specifier
  name: (identifier) @import.named
)

(import_specifier
  alias: (identifier) @import.alias
)

(import_statement
  (import_clause
    (identifier) @import.default
  )
)

(import_statement
  (import_clause
    (namespace_import
      (identifier) @import.namespace
    )
  )
)

; ===========================================================================
; EXPORT STATEMENTS
; ===========================================================================

; Exported class: export class Foo {}
(export_statement
  declaration: (class_declaration
    name: (identifier) @export.name
  ) @export.declaration
)

; Exported function: export function foo() {}
(export_statement
  declaration: (function_declaration
    name: (identifier) @export.name
  ) @export.declaration
)

; Exported variable: export const foo = 1;
(export_statement
  declaration: (lexical_declaration
    (variable_declarator
      name: (identifier) @export.name
    )
  ) @export.declaration
)

; Export clause names: export { foo, bar };
(export_specifier
  name: (identifier) @export.clause.name
)

; Export clause alias: export { foo as f };
(export_specifier
  alias: (identifier) @export.clause.alias
)

; Re-export source: export { foo } from './mod'; / export * from './mod';
(export_statement
  source: (string (string_fragment) @export.reexport.source)
)
`
