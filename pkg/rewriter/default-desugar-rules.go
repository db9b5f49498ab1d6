// This file contains the built-in desugaring rules shared by the command
// line tools. Language front-ends install their own tables; these cover the
// common sugar forms and double as a worked example of the YAML syntax.

package rewriter

const DefaultDesugarRules = `
name: default-sugar
description: Built-in desugaring of the common surface forms.
rules:

  - op: add1
    cases:
      - lhs:
          surf:
            op: add1
            args:
              - pvar: {name: x}
        rhs:
          tag:
            lhs:
              surf:
                op: add1
                args:
                  - pvar: {name: x}
            rhs:
              core:
                op: plus
                args:
                  - ref: x
                  - prim: {num: 1}
            body:
              core:
                op: plus
                args:
                  - ref: x
                  - prim: {num: 1}

  - op: and
    cases:
      - lhs:
          surf:
            op: and
            args:
              - pvar: {name: a}
              - pvar: {name: b}
        rhs:
          core:
            op: if
            args:
              - ref: a
              - ref: b
              - prim: {bool: false}

  - op: or
    cases:
      - lhs:
          surf:
            op: or
            args:
              - pvar: {name: a}
              - pvar: {name: b}
        rhs:
          fresh:
            names:
              - name: t
            body:
              core:
                op: let
                args:
                  - ref: t
                  - ref: a
                  - core:
                      op: if
                      args:
                        - ref: t
                        - ref: t
                        - ref: b

  - op: block
    cases:
      - lhs:
          surf:
            op: block
            args:
              - list:
                  ellipsis:
                    item: {pvar: {name: e}}
                    label: es
        rhs:
          core:
            op: seq
            args:
              - list:
                  ellipsis:
                    item: {ref: e}
                    label: es
`
