// Package back is the reference code generator: an ir.CodeGen that
// lowers a program into an arm64/NEON flavoured assembly listing.
// Each shader value occupies one vector register, four floats wide.
package back

import (
	"context"
	"fmt"
	"sort"

	"nikand.dev/go/heap"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/shadelang/shade/compiler/ir"
)

type (
	Compiler struct{}

	vreg int

	val struct {
		v       vreg
		scratch bool
	}

	gen struct {
		hdr  []byte
		body []byte

		regs  map[ir.Reg]vreg
		bound map[vreg]bool
		stack []val

		free heap.Heap[vreg]
		next vreg

		pool map[uint]ir.Vec4
	}
)

// CompileProgram emits the whole listing into b: prologue, header
// phase declarations, body phase code, epilogue and constant pool.
func (c *Compiler) CompileProgram(ctx context.Context, b []byte, name string, prog []ir.Instruction) (_ []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "back: compile program", "name", name, "insns", len(prog))
	defer tr.Finish("err", &err)

	g := newGen()

	err = ir.Emit(ctx, prog, g)
	if err != nil {
		return nil, errors.Wrap(err, "emit")
	}

	b = fmt.Appendf(b, `// shader %s

.global shade_main
.align 4
shade_main:
`, name)

	b = append(b, g.hdr...)
	b = append(b, g.body...)
	b = append(b, "\tRET\n"...)

	if len(g.pool) != 0 {
		b = append(b, '\n')

		slots := make([]int, 0, len(g.pool))
		for slot := range g.pool {
			slots = append(slots, int(slot))
		}

		sort.Ints(slots)

		for _, slot := range slots {
			v := g.pool[uint(slot)]
			b = fmt.Appendf(b, "Lc%d:\t.float %v, %v, %v, %v\n", slot, v[0], v[1], v[2], v[3])
		}
	}

	tr.V("listing").Printw("compiled", "size", len(b))

	return b, nil
}

func newGen() *gen {
	return &gen{
		regs:  map[ir.Reg]vreg{},
		bound: map[vreg]bool{},
		free:  heap.Heap[vreg]{Less: vregLess},
		next:  1, // V0 is the call/return value register
		pool:  map[uint]ir.Vec4{},
	}
}

func vregLess(d []vreg, i, j int) bool { return d[i] < d[j] }

func (g *gen) alloc() vreg {
	if g.free.Len() != 0 {
		return g.free.Pop()
	}

	v := g.next
	g.next++

	return v
}

func (g *gen) release(x val) {
	if x.scratch && !g.bound[x.v] {
		g.free.Push(x.v)
	}
}

func (g *gen) push(x val) { g.stack = append(g.stack, x) }

func (g *gen) pop() val {
	l := len(g.stack) - 1
	x := g.stack[l]
	g.stack = g.stack[:l]

	return x
}

func (g *gen) DefineConst(slot uint, v ir.Vec4) {
	g.pool[slot] = v

	g.hdr = fmt.Appendf(g.hdr, "\t// const c%d = %v\n", slot, v)
}

func (g *gen) DefineVar(kind ir.TextureKind, dst ir.Reg) {
	g.hdr = fmt.Appendf(g.hdr, "\t// var %v: %v\n", dst, kind)
}

func (g *gen) LoadValue(src ir.Reg) {
	if v, ok := g.regs[src]; ok {
		g.push(val{v: v})

		return
	}

	v := g.alloc()

	switch src.Kind {
	case ir.Const:
		g.body = fmt.Appendf(g.body, "\tLDR\tQ%d, Lc%d\n", v, src.Num)

		g.push(val{v: v, scratch: true})
	default:
		// Inputs and the like arrive precolored; pin the first use.
		g.body = fmt.Appendf(g.body, "\t// %v in V%d\n", src, v)

		g.regs[src] = v
		g.bound[v] = true

		g.push(val{v: v})
	}
}

func (g *gen) EmitBinary(op ir.BinOp) {
	y := g.pop()
	x := g.pop()

	d := g.alloc()

	mn := "FADD"
	if op == ir.Mul {
		mn = "FMUL"
	}

	g.body = fmt.Appendf(g.body, "\t%s\tV%d.4S, V%d.4S, V%d.4S\n", mn, d, x.v, y.v)

	g.release(x)
	g.release(y)

	g.push(val{v: d, scratch: true})
}

func (g *gen) SampleTexture(sampler, tex uint) {
	d := g.alloc()

	g.body = fmt.Appendf(g.body, "\tBL\ttex_sample_%d_%d\n", sampler, tex)
	g.body = fmt.Appendf(g.body, "\tMOV\tV%d.16B, V0.16B\n", d)

	g.push(val{v: d, scratch: true})
}

func (g *gen) StoreValue(dst ir.Reg) {
	x := g.pop()

	if old, ok := g.regs[dst]; ok && old != x.v {
		delete(g.bound, old)
		g.free.Push(old)
	}

	g.regs[dst] = x.v
	g.bound[x.v] = true

	if dst.Kind == ir.ColorOut {
		g.body = fmt.Appendf(g.body, "\tMOV\tV0.16B, V%d.16B\t// %v\n", x.v, dst)

		return
	}

	g.body = fmt.Appendf(g.body, "\t// %v = V%d\n", dst, x.v)
}
