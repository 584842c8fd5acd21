package ir

import "fmt"

type (
	// Instruction is one shader operation. The variant set is closed;
	// passes are added through Visitor.
	//
	// EmitHeader and EmitBody default to no-ops. The driver (Emit)
	// runs every header in program order before any body, so
	// declarations are visible to the backend regardless of where
	// they sit in the program.
	Instruction interface {
		Accept(v Visitor)

		EmitHeader(g CodeGen) error
		EmitBody(g CodeGen) error

		Predicate() *Reg
		SetPredicate(r Reg)

		fmt.Stringer
	}

	// base carries the optional predicate register and the default
	// no-op emission hooks. Emission never interprets the predicate;
	// it is an extension point for the backend.
	base struct {
		pred *Reg
	}

	// SetConst declares constant slot Slot to hold Val. Header only.
	SetConst struct {
		base

		Slot uint
		Val  Vec4
	}

	// DefVar binds a register to a texture kind. Header only.
	DefVar struct {
		base

		Kind TextureKind
		Dst  Reg
	}

	// TexLoad samples Tex through Sampler into Dst. Body only.
	// The operand kinds are validated before any backend call.
	TexLoad struct {
		base

		Dst     Reg
		Sampler Reg
		Tex     Reg
	}

	// BinaryOp computes Dst = Src1 Op Src2. Body only.
	BinaryOp struct {
		base

		Op   BinOp
		Dst  Reg
		Src1 Reg
		Src2 Reg
	}

	// UnaryOp is Dst = Op(Src). It exists for dispatch and rendering
	// but has no body lowering yet; emitting it always fails.
	UnaryOp struct {
		base

		Op  UnOp
		Dst Reg
		Src Reg
	}

	// Mov copies Src into Dst. Body only.
	Mov struct {
		base

		Dst Reg
		Src Reg
	}
)

func (b *base) EmitHeader(g CodeGen) error { return nil }

func (b *base) EmitBody(g CodeGen) error { return nil }

func (b *base) Predicate() *Reg { return b.pred }

func (b *base) SetPredicate(r Reg) { b.pred = &r }

func (b *base) pfx() string {
	if b.pred == nil {
		return ""
	}

	return fmt.Sprintf("(%v) ", *b.pred)
}

func (x *SetConst) Accept(v Visitor) { v.VisitSetConst(x) }

func (x *DefVar) Accept(v Visitor) { v.VisitDefVar(x) }

func (x *TexLoad) Accept(v Visitor) { v.VisitTexLoad(x) }

func (x *BinaryOp) Accept(v Visitor) { v.VisitBinaryOp(x) }

func (x *UnaryOp) Accept(v Visitor) { v.VisitUnaryOp(x) }

func (x *Mov) Accept(v Visitor) { v.VisitMov(x) }

func (x *SetConst) EmitHeader(g CodeGen) error {
	g.DefineConst(x.Slot, x.Val)

	return nil
}

func (x *DefVar) EmitHeader(g CodeGen) error {
	g.DefineVar(x.Kind, x.Dst)

	return nil
}

func (x *TexLoad) EmitBody(g CodeGen) error {
	if x.Sampler.Kind != SamplerState {
		return KindError{Insn: x, Slot: "sampler", Got: x.Sampler.Kind, Want: SamplerState}
	}

	if x.Tex.Kind != Texture {
		return KindError{Insn: x, Slot: "tex", Got: x.Tex.Kind, Want: Texture}
	}

	g.SampleTexture(x.Sampler.Num, x.Tex.Num)
	g.StoreValue(x.Dst)

	return nil
}

func (x *BinaryOp) EmitBody(g CodeGen) error {
	g.LoadValue(x.Src1)
	g.LoadValue(x.Src2)
	g.EmitBinary(x.Op)
	g.StoreValue(x.Dst)

	return nil
}

func (x *UnaryOp) EmitBody(g CodeGen) error {
	return UnsupportedError{Insn: x}
}

func (x *Mov) EmitBody(g CodeGen) error {
	g.LoadValue(x.Src)
	g.StoreValue(x.Dst)

	return nil
}

func (x *SetConst) String() string {
	return fmt.Sprintf("%sset-const c%d = %v", x.pfx(), x.Slot, x.Val)
}

func (x *DefVar) String() string {
	return fmt.Sprintf("%sdef-var %v/%v", x.pfx(), x.Dst, x.Kind)
}

func (x *TexLoad) String() string {
	return fmt.Sprintf("%stexld %v = %v[%v]", x.pfx(), x.Dst, x.Sampler, x.Tex)
}

func (x *BinaryOp) String() string {
	return fmt.Sprintf("%s%v = %v %v %v", x.pfx(), x.Dst, x.Src1, x.Op, x.Src2)
}

func (x *UnaryOp) String() string {
	return fmt.Sprintf("%s%v = %v %v", x.pfx(), x.Dst, x.Op, x.Src)
}

func (x *Mov) String() string {
	return fmt.Sprintf("%smov %v = %v", x.pfx(), x.Dst, x.Src)
}
