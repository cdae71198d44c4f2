package modules

// TSQueries contains tree-sitter query patterns for TypeScript import and
// export extraction. The origin resolver consumes these captures to scan a
// file's top-level import declarations and exported type declarations.
//
// Captures:
//   - @import.* - Import-related nodes
//   - @export.* - Export-related nodes
const TSQueries = `
; ===========================================================================
; IMPORT STATEMENTS
; ===========================================================================

; Import source: import ... from './mod';
(import_statement
  source: (string (string_fragment) @import.source)
)

; Named imports: import { Foo, Bar as B } from './mod';
(import_specifier
  name: (identifier) @import.named
)

; Named import alias: import { Foo as F } from './mod';
(import_specifier
  alias: (identifier) @import.alias
)

; Default import: import Foo from './mod';
(import_statement
  (import_clause
    (identifier) @import.default
  )
)

; Namespace import: import * as ns from './mod';
(import_statement
  (import_clause
    (namespace_import
      (identifier) @import.namespace
    )
  )
)

; Type-only import statement: import type { Foo } from './mod';
(import_statement
  "type" @import.type.marker
)

; ===========================================================================
; EXPORT STATEMENTS
; ===========================================================================

; Exported interface: export interface Foo {}
(export_statement
  declaration: (interface_declaration
    name: (type_identifier) @export.name
  ) @export.declaration
)

; Exported type alias: export type ID = string;
(export_statement
  declaration: (type_alias_declaration
    name: (type_identifier) @export.name
  ) @export.declaration
)

; Exported enum: export enum Color {}
(export_statement
  declaration: (enum_declaration
    name: (identifier) @export.name
  ) @export.declaration
)

; Exported class: export class Foo {}
(export_statement
  declaration: (class_declaration
    name: (type_identifier) @export.name
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

; Export clause names: export { Foo, Bar };
(export_specifier
  name: (identifier) @export.clause.name
)

; Export clause alias: export { Foo as F };
(export_specifier
  alias: (identifier) @export.clause.alias
)

; Re-export source: export { Foo } from './mod'; / export * from './mod';
(export_statement
  source: (string (string_fragment) @export.reexport.source)
)
`
