/*

Process of compilation

Shader Assembly Text ->
	parse ->
Instruction Program (ir) ->
	emit, header phase (declarations) ->
	emit, body phase (value flow) ->
Native Assembly Listing (back)

The same program can instead be run on the interpreter (interp), or
traversed by passes built on the ir visitor (listing, usage, check).

*/
package compiler
