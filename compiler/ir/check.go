package ir

import (
	"tlog.app/go/loc"

	"github.com/shadelang/shade/compiler/set"
)

type (
	// Uses collects register numbers read and written per kind.
	Uses struct {
		Read    map[Kind]*set.Bits
		Written map[Kind]*set.Bits
	}

	// Diag is one problem found by Check, positioned by instruction
	// index. From records where in the checker it was raised.
	Diag struct {
		Insn int
		Err  error
		From loc.PC
	}

	checker struct {
		i       int
		written set.Bits
		diags   []Diag
	}
)

func NewUses() *Uses {
	return &Uses{
		Read:    map[Kind]*set.Bits{},
		Written: map[Kind]*set.Bits{},
	}
}

func (u *Uses) Collect(prog []Instruction) {
	for _, x := range prog {
		x.Accept(u)
	}
}

func (u *Uses) read(r Reg) {
	s := u.Read[r.Kind]
	if s == nil {
		s = &set.Bits{}
		u.Read[r.Kind] = s
	}

	s.Set(r.Num)
}

func (u *Uses) write(r Reg) {
	s := u.Written[r.Kind]
	if s == nil {
		s = &set.Bits{}
		u.Written[r.Kind] = s
	}

	s.Set(r.Num)
}

func (u *Uses) pred(x Instruction) {
	if p := x.Predicate(); p != nil {
		u.read(*p)
	}
}

func (u *Uses) VisitSetConst(x *SetConst) {
	u.write(Reg{Kind: Const, Num: x.Slot})
	u.pred(x)
}

func (u *Uses) VisitDefVar(x *DefVar) {
	u.write(x.Dst)
	u.pred(x)
}

func (u *Uses) VisitTexLoad(x *TexLoad) {
	u.read(x.Sampler)
	u.read(x.Tex)
	u.write(x.Dst)
	u.pred(x)
}

func (u *Uses) VisitBinaryOp(x *BinaryOp) {
	u.read(x.Src1)
	u.read(x.Src2)
	u.write(x.Dst)
	u.pred(x)
}

func (u *Uses) VisitUnaryOp(x *UnaryOp) {
	u.read(x.Src)
	u.write(x.Dst)
	u.pred(x)
}

func (u *Uses) VisitMov(x *Mov) {
	u.read(x.Src)
	u.write(x.Dst)
	u.pred(x)
}

// Check walks the program with body-phase semantics and reports temps
// read before any instruction writes them, operand kind mismatches,
// and instructions with no lowering. It calls no backend; Emit still
// enforces its own validation.
func Check(prog []Instruction) []Diag {
	c := &checker{}

	for i, x := range prog {
		c.i = i
		x.Accept(c)
	}

	return c.diags
}

func (c *checker) diag(err error) {
	c.diags = append(c.diags, Diag{Insn: c.i, Err: err, From: loc.Caller(1)})
}

func (c *checker) read(x Instruction, r Reg) {
	if r.Kind == Temp && !c.written.IsSet(r.Num) {
		c.diag(UndefinedError{Insn: x, Reg: r})
	}
}

func (c *checker) write(r Reg) {
	if r.Kind == Temp {
		c.written.Set(r.Num)
	}
}

func (c *checker) VisitSetConst(x *SetConst) {}

func (c *checker) VisitDefVar(x *DefVar) {}

func (c *checker) VisitTexLoad(x *TexLoad) {
	if x.Sampler.Kind != SamplerState {
		c.diag(KindError{Insn: x, Slot: "sampler", Got: x.Sampler.Kind, Want: SamplerState})
	}

	if x.Tex.Kind != Texture {
		c.diag(KindError{Insn: x, Slot: "tex", Got: x.Tex.Kind, Want: Texture})
	}

	c.write(x.Dst)
}

func (c *checker) VisitBinaryOp(x *BinaryOp) {
	c.read(x, x.Src1)
	c.read(x, x.Src2)
	c.write(x.Dst)
}

func (c *checker) VisitUnaryOp(x *UnaryOp) {
	c.diag(UnsupportedError{Insn: x})
}

func (c *checker) VisitMov(x *Mov) {
	c.read(x, x.Src)
	c.write(x.Dst)
}
