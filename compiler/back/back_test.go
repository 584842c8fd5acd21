package back

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadelang/shade/compiler/ir"
)

func TestSmoke(t *testing.T) {
	prog := []ir.Instruction{
		&ir.SetConst{Slot: 0, Val: ir.Vec4{1, 1, 1, 1}},
		&ir.DefVar{Kind: ir.Tex2d, Dst: ir.Reg{Kind: ir.Texture, Num: 0}},
		&ir.TexLoad{Dst: ir.Reg{Kind: ir.Temp, Num: 1}, Sampler: ir.Reg{Kind: ir.SamplerState, Num: 0}, Tex: ir.Reg{Kind: ir.Texture, Num: 0}},
		&ir.BinaryOp{Op: ir.Add, Dst: ir.Reg{Kind: ir.Temp, Num: 2}, Src1: ir.Reg{Kind: ir.Temp, Num: 1}, Src2: ir.Reg{Kind: ir.Const, Num: 0}},
		&ir.Mov{Dst: ir.Reg{Kind: ir.ColorOut, Num: 0}, Src: ir.Reg{Kind: ir.Temp, Num: 2}},
	}

	ctx := context.Background()

	var c Compiler

	obj, err := c.CompileProgram(ctx, nil, "fill", prog)
	require.NoError(t, err)

	t.Logf("result:\n%s", obj)

	s := string(obj)

	require.Contains(t, s, ".global shade_main")
	require.Contains(t, s, "// const c0 = (1, 1, 1, 1)")
	require.Contains(t, s, "// var t0: 2d")
	require.Contains(t, s, "BL\ttex_sample_0_0")
	require.Contains(t, s, "LDR\tQ2, Lc0")
	require.Contains(t, s, "FADD\tV3.4S, V1.4S, V2.4S")
	require.Contains(t, s, "MOV\tV0.16B, V3.16B")
	require.Contains(t, s, "Lc0:\t.float 1, 1, 1, 1")
}

func TestDeclsPrecedeBody(t *testing.T) {
	// const is declared below its use in the program but lands above
	// the load in the listing
	prog := []ir.Instruction{
		&ir.Mov{Dst: ir.Reg{Kind: ir.ColorOut, Num: 0}, Src: ir.Reg{Kind: ir.Const, Num: 3}},
		&ir.SetConst{Slot: 3, Val: ir.Vec4{0, 1, 0, 1}},
	}

	var c Compiler

	obj, err := c.CompileProgram(context.Background(), nil, "green", prog)
	require.NoError(t, err)

	s := string(obj)

	decl := "// const c3 = (0, 1, 0, 1)"
	load := "LDR\tQ1, Lc3"

	require.Contains(t, s, decl)
	require.Contains(t, s, load)
	require.Less(t, indexOf(t, s, decl), indexOf(t, s, load))
}

func TestScratchRegisterReuse(t *testing.T) {
	prog := []ir.Instruction{
		&ir.SetConst{Slot: 0, Val: ir.Vec4{1, 0, 0, 1}},
		&ir.SetConst{Slot: 1, Val: ir.Vec4{0, 1, 0, 1}},
		&ir.BinaryOp{Op: ir.Add, Dst: ir.Reg{Kind: ir.Temp, Num: 0}, Src1: ir.Reg{Kind: ir.Const, Num: 0}, Src2: ir.Reg{Kind: ir.Const, Num: 1}},
		&ir.BinaryOp{Op: ir.Mul, Dst: ir.Reg{Kind: ir.Temp, Num: 1}, Src1: ir.Reg{Kind: ir.Const, Num: 0}, Src2: ir.Reg{Kind: ir.Const, Num: 1}},
	}

	var c Compiler

	obj, err := c.CompileProgram(context.Background(), nil, "reuse", prog)
	require.NoError(t, err)

	t.Logf("result:\n%s", obj)

	// both consts were loaded into scratch registers and released
	// after the add, so the mul reuses V1 and V2
	s := string(obj)

	require.Contains(t, s, "FADD\tV3.4S, V1.4S, V2.4S")
	require.Contains(t, s, "FMUL\tV4.4S, V1.4S, V2.4S")
}

func TestUnaryOpFailsCompile(t *testing.T) {
	prog := []ir.Instruction{
		&ir.UnaryOp{Op: ir.Rcp, Dst: ir.Reg{Kind: ir.Temp, Num: 0}, Src: ir.Reg{Kind: ir.Temp, Num: 1}},
	}

	var c Compiler

	_, err := c.CompileProgram(context.Background(), nil, "bad", prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not supported")
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()

	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}

	t.Fatalf("%q not found", sub)

	return -1
}
