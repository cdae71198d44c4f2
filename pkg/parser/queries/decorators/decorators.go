// Package decorators holds the tree-sitter query for decorator call sites.
package decorators

// Queries matches class and member decorators. The decorator node kinds are
// identical in the TypeScript and JavaScript grammars, so one query serves
// both languages.
//
// Captures:
//   - @decorator.name      - bare identifier callee (@Component(...))
//   - @decorator.qualified - member expression callee (@core.Component(...))
//   - @decorator.args      - the arguments node of the decorator call
//   - @decorator.call      - the whole call expression
//   - @decorator.bare      - argument-less decorator (@Injectable)
const Queries = `
; Decorator with call arguments: @Component({ ... })
(decorator
  (call_expression
    function: (identifier) @decorator.name
    arguments: (arguments) @decorator.args
  ) @decorator.call
)

; Qualified decorator: @core.Component({ ... })
(decorator
  (call_expression
    function: (member_expression) @decorator.qualified
    arguments: (arguments) @decorator.args
  ) @decorator.call
)

; Bare decorator: @Injectable
(decorator
  (identifier) @decorator.bare
)
`
