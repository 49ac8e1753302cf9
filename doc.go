// Jannis M. Hoffmann, 13. 9. 2018

/*
Package jsontree reads and writes JSON through an in-memory value tree.

Parse turns UTF-8 text into a *Value: a tagged union of null, bool, 32-bit
integer, real, string, array and object. Numbers without fraction or exponent
that fit into 32 bits become Integers, everything else Reals. Object members
keep their insertion order.

The reader is a little more lenient than RFC 4627 in two ways: line and block
comments are skipped wherever whitespace may appear, and Parse optionally
accepts a comma before a closing bracket. It is stricter in others: the root
must be an array or an object, nesting is limited to MaxDepth levels, and
string escapes are limited to the JSON set plus \xHH.

Write turns a tree back into text. Reals always carry a fraction or an
exponent so that the output parses back into the same tree.
*/
package jsontree // import "github.com/d1ced/jsontree"
