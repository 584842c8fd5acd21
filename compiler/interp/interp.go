// Package interp executes a program directly: an ir.CodeGen that
// keeps register values in memory instead of emitting code. Texture
// sampling is delegated to a caller-supplied function.
package interp

import (
	"context"

	"github.com/shadelang/shade/compiler/ir"
)

// Machine holds the state of one execution. One Machine per program;
// it is not safe to share across concurrent runs.
type Machine struct {
	// Sampler supplies texture data. Nil samples as zero.
	Sampler func(sampler, tex uint) ir.Vec4

	consts map[uint]ir.Vec4
	vars   map[ir.Reg]ir.TextureKind
	regs   map[ir.Reg]ir.Vec4
	stack  []ir.Vec4
}

func New() *Machine {
	return &Machine{
		consts: map[uint]ir.Vec4{},
		vars:   map[ir.Reg]ir.TextureKind{},
		regs:   map[ir.Reg]ir.Vec4{},
	}
}

// Run executes the program on the machine.
func (m *Machine) Run(ctx context.Context, prog []ir.Instruction) error {
	return ir.Emit(ctx, prog, m)
}

// SetReg presets a register value, typically a shader input.
func (m *Machine) SetReg(r ir.Reg, v ir.Vec4) { m.regs[r] = v }

// Reg reads a register value after a run.
func (m *Machine) Reg(r ir.Reg) (ir.Vec4, bool) {
	v, ok := m.regs[r]

	return v, ok
}

// Var reads a texture kind binding after a run.
func (m *Machine) Var(r ir.Reg) (ir.TextureKind, bool) {
	k, ok := m.vars[r]

	return k, ok
}

func (m *Machine) DefineConst(slot uint, v ir.Vec4) { m.consts[slot] = v }

func (m *Machine) DefineVar(kind ir.TextureKind, dst ir.Reg) { m.vars[dst] = kind }

func (m *Machine) LoadValue(src ir.Reg) {
	var v ir.Vec4

	if src.Kind == ir.Const {
		v = m.consts[src.Num]
	} else {
		v = m.regs[src]
	}

	m.stack = append(m.stack, v)
}

func (m *Machine) StoreValue(dst ir.Reg) {
	m.regs[dst] = m.pop()
}

func (m *Machine) EmitBinary(op ir.BinOp) {
	y := m.pop()
	x := m.pop()

	var v ir.Vec4

	for i := range v {
		switch op {
		case ir.Add:
			v[i] = x[i] + y[i]
		case ir.Mul:
			v[i] = x[i] * y[i]
		}
	}

	m.stack = append(m.stack, v)
}

func (m *Machine) SampleTexture(sampler, tex uint) {
	var v ir.Vec4

	if m.Sampler != nil {
		v = m.Sampler(sampler, tex)
	}

	m.stack = append(m.stack, v)
}

func (m *Machine) pop() ir.Vec4 {
	l := len(m.stack) - 1
	v := m.stack[l]
	m.stack = m.stack[:l]

	return v
}
