// Package ir defines the pixel shader intermediate representation.
//
// A program is an ordered slice of Instruction. Instructions are built
// once, never mutated (except for an optional predicate register), and
// traversed any number of times by independent passes. All mutable
// state lives in the CodeGen context the emission driver threads
// through the two phases.
package ir

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Kind tags a register with its namespace. The set is closed.
	Kind uint8

	// Reg is a numbered register within its kind's namespace. Whether
	// it is a source or a destination is decided by the operand slot
	// it occupies, not by the register itself.
	Reg struct {
		Kind Kind
		Num  uint
	}

	// Vec4 is a 4-component float vector, the only value type the
	// shader operates on.
	Vec4 [4]float32

	// TextureKind is the shape a DefVar binds a register to.
	TextureKind uint8

	// BinOp is a two-operand arithmetic operation.
	BinOp uint8

	// UnOp is a one-operand arithmetic operation.
	UnOp uint8
)

const (
	Temp Kind = iota
	Input
	Const
	SamplerState
	Texture
	ColorOut
)

const (
	TexUnknown TextureKind = iota
	Tex2d
	TexCube
	TexVolume
)

const (
	Add BinOp = iota
	Mul
)

const (
	Rcp UnOp = iota
)

func (k Kind) String() string {
	switch k {
	case Temp:
		return "temp"
	case Input:
		return "input"
	case Const:
		return "const"
	case SamplerState:
		return "sampler-state"
	case Texture:
		return "texture"
	case ColorOut:
		return "color-out"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) prefix() string {
	switch k {
	case Temp:
		return "r"
	case Input:
		return "v"
	case Const:
		return "c"
	case SamplerState:
		return "s"
	case Texture:
		return "t"
	case ColorOut:
		return "oC"
	}

	return "?"
}

func (r Reg) String() string {
	return fmt.Sprintf("%s%d", r.Kind.prefix(), r.Num)
}

func (r Reg) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "%v", r)
}

func (v Vec4) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", v[0], v[1], v[2], v[3])
}

func (k TextureKind) String() string {
	switch k {
	case TexUnknown:
		return "unknown"
	case Tex2d:
		return "2d"
	case TexCube:
		return "cube"
	case TexVolume:
		return "volume"
	}

	return fmt.Sprintf("texture-kind(%d)", int(k))
}

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Mul:
		return "*"
	}

	return fmt.Sprintf("bin-op(%d)", int(op))
}

func (op UnOp) String() string {
	switch op {
	case Rcp:
		return "rcp"
	}

	return fmt.Sprintf("un-op(%d)", int(op))
}
