/*
Package forth implements a small Forth: an outer interpreter that compiles
whitespace separated words into threaded code, and an inner interpreter that
runs that code against a data stack, a return stack, and a heap of integer
cells.

# Words

A word is looked up in the dictionary, then:

  - immediate words run right away, even while compiling; this is how
    : ; if else then begin until while repeat again do loop exit and
    friends are implemented
  - other words are compiled into the current definition while compiling,
    and run otherwise
  - anything else must parse as a number in the current base, or as a
    fixed point decimal if it contains a point

Calls between defined words are compiled by name, and looked up again every
time they run. So a word may call another that is not defined yet, recurse
by name, and see later redefinitions of the words it calls. Native words
are bound when compiled.

# Threaded code

A definition is a slice of atoms: native primitives, integer operands, and
calls by name. The jump primitives and the literal push consume the operand
that follows them. Control words compile jumps with a zero operand, and
backpatch it once the matching closer knows the target.

# Cells

Cells are Go ints. Truth is -1, and any nonzero cell counts as true. Fixed
point values are cells scaled by 10^precision, where precision is a heap
cell that defaults to 5, so 1.5 is the cell 150000:

	3 precision ! 1.5 2.25 f* .f

prints 3.375.

The base and precision words push the addresses of those heap cells, so
that they may be changed with ! like any other variable.
*/
package forth
